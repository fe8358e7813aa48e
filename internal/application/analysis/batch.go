package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/domain/report"
)

// ItemState is the lifecycle of one batch entry.
type ItemState string

const (
	StatePending   ItemState = "pending"
	StateScraping  ItemState = "scraping"
	StateCacheHit  ItemState = "cache-hit"
	StateOCR       ItemState = "ocr-enriching"
	StateAnalyzing ItemState = "analyzing"
	StateSucceeded ItemState = "succeeded"
	StateFailed    ItemState = "failed"
)

// BatchCommand untuk analisa banyak profil secara berurutan
type BatchCommand struct {
	Usernames     []string
	TargetPersona string
	Briefing      string
}

type BatchItemData struct {
	Profile profile.Profile `json:"profile"`
	Report  *report.Report  `json:"analysis"`
}

type BatchItem struct {
	Username string         `json:"username"`
	Success  bool           `json:"success"`
	Data     *BatchItemData `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type BatchResult struct {
	Total     int         `json:"total"`
	Completed int         `json:"completed"`
	Failed    int         `json:"failed"`
	Results   []BatchItem `json:"results"`
}

// AnalyzeBatch processes usernames one at a time in input order. A failing
// item is recorded and the batch moves on. Items are spaced by BatchPacing.
func (s *Service) AnalyzeBatch(ctx context.Context, cmd BatchCommand) (*BatchResult, error) {
	opts := s.Options.withDefaults()
	if n := len(cmd.Usernames); n < 1 || n > opts.MaxBatch {
		return nil, invalidf(ErrBatchSize, "got %d", n)
	}
	usernames := make([]string, len(cmd.Usernames))
	for i, u := range cmd.Usernames {
		usernames[i] = normalizeUsername(u)
		if err := profile.ValidateUsername(usernames[i]); err != nil {
			return nil, invalid(err)
		}
	}
	if err := validateCommon(usernames[0], cmd.TargetPersona, cmd.Briefing); err != nil {
		return nil, err
	}

	log := s.logger().With(zap.Int("total", len(usernames)))
	log.Info("batch started")

	res := &BatchResult{Total: len(usernames), Results: make([]BatchItem, 0, len(usernames))}
	for i, username := range usernames {
		ilog := log.With(zap.String("username", username), zap.Int("index", i+1))

		data, err := s.analyzeItem(ctx, ilog, username, cmd, opts)
		s.observe(false, err)
		if err != nil {
			ilog.Warn("batch item", zap.String("state", string(StateFailed)), zap.Error(err))
			res.Results = append(res.Results, BatchItem{Username: username, Success: false, Error: err.Error()})
			res.Failed++
		} else {
			ilog.Info("batch item", zap.String("state", string(StateSucceeded)))
			res.Results = append(res.Results, BatchItem{Username: username, Success: true, Data: data})
			res.Completed++
		}

		if i < len(usernames)-1 && opts.BatchPacing > 0 {
			if err := s.Clock.Sleep(ctx, opts.BatchPacing); err != nil {
				return nil, fmt.Errorf("batch interrupted after %d items: %w", i+1, err)
			}
		}
	}

	log.Info("batch completed", zap.Int("completed", res.Completed), zap.Int("failed", res.Failed))
	return res, nil
}

func (s *Service) analyzeItem(ctx context.Context, log *zap.Logger, username string, cmd BatchCommand, opts Options) (data *BatchItemData, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analyze @%s: panic: %v", username, r)
		}
	}()
	log.Debug("batch item", zap.String("state", string(StatePending)))

	snap, fromCache, err := s.load(ctx, username)
	if err != nil {
		return nil, err
	}
	if fromCache {
		log.Debug("batch item", zap.String("state", string(StateCacheHit)))
	} else {
		log.Debug("batch item", zap.String("state", string(StateScraping)))
	}

	synthetic := profile.IsSynthetic(snap.Profile)
	posts := snap.Posts
	if synthetic {
		posts = blankOCR(posts)
	} else {
		log.Debug("batch item", zap.String("state", string(StateOCR)))
		posts = s.enrich(ctx, posts, opts.OCRCap)
	}

	log.Debug("batch item", zap.String("state", string(StateAnalyzing)))
	p := snap.Profile.WithPosts(posts)
	rep, err := s.Reports.Generate(ctx, p, posts, cmd.TargetPersona, cmd.Briefing)
	if err != nil {
		return nil, err
	}

	if _, err := s.appendHistory(ctx, username, p, *rep); err != nil {
		return nil, err
	}
	if !fromCache && !synthetic {
		s.writeCache(ctx, log, username, profile.Snapshot{Profile: snap.Profile, Posts: posts}, opts.BatchTTL)
	}
	return &BatchItemData{Profile: p, Report: rep}, nil
}
