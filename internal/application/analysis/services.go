package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/application"
	appreport "github.com/bryanwahyu/leadscope/internal/application/report"
	"github.com/bryanwahyu/leadscope/internal/domain/cache"
	"github.com/bryanwahyu/leadscope/internal/domain/history"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/domain/report"
)

// ReportGenerator is satisfied by report.Generator.
type ReportGenerator interface {
	Generate(ctx context.Context, p profile.Profile, posts []profile.Post, persona, briefing string) (*report.Report, error)
}

// Options tune the pipeline. Zero values fall back to DefaultOptions.
type Options struct {
	OCRCap      int
	SingleTTL   time.Duration
	BatchTTL    time.Duration
	BatchPacing time.Duration
	MaxBatch    int
}

func DefaultOptions() Options {
	return Options{
		OCRCap:      3,
		SingleTTL:   time.Hour,
		BatchTTL:    24 * time.Hour,
		BatchPacing: 2 * time.Second,
		MaxBatch:    50,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.OCRCap <= 0 {
		o.OCRCap = d.OCRCap
	}
	if o.SingleTTL <= 0 {
		o.SingleTTL = d.SingleTTL
	}
	if o.BatchTTL <= 0 {
		o.BatchTTL = d.BatchTTL
	}
	if o.BatchPacing < 0 {
		o.BatchPacing = 0
	}
	if o.MaxBatch <= 0 {
		o.MaxBatch = d.MaxBatch
	}
	return o
}

// Service implements the analysis use-cases.
// Safe for concurrent use as long as its collaborators are.
type Service struct {
	Scraper profile.Scraper
	Cache   cache.Repository
	Records history.Repository
	Archive history.Archive // optional
	Reports ReportGenerator
	OCR     TextExtractor
	Clock   application.Clock
	Logger  *zap.Logger
	Options Options
	// OnAnalysis, when set, is called once per finished profile.
	OnAnalysis func(fromCache bool, err error)
}

//
// ==== USE CASES ====
//

// AnalyzeCommand untuk analisa satu profil
type AnalyzeCommand struct {
	Username      string
	Filters       *profile.Filters
	TargetPersona string
	Briefing      string
}

type AnalyzeResult struct {
	Profile   profile.Profile  `json:"profile"`
	Report    *report.Report   `json:"analysis"`
	FromCache bool             `json:"fromCache"`
	HistoryID history.RecordID `json:"historyId,omitempty"`
}

// Analyze runs the single-profile pipeline: cache or scrape, filter, OCR the
// first posts, generate the report, then write cache and history.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (res *AnalyzeResult, err error) {
	cmd.Username = normalizeUsername(cmd.Username)
	if err := validateCommon(cmd.Username, cmd.TargetPersona, cmd.Briefing); err != nil {
		return nil, err
	}
	filters := profile.DefaultFilters()
	if cmd.Filters != nil {
		if err := cmd.Filters.Validate(); err != nil {
			return nil, invalidf(ErrInvalidFilters, "%v", err)
		}
		filters = *cmd.Filters
	}
	defer func() { s.observe(res != nil && res.FromCache, err) }()

	opts := s.Options.withDefaults()
	log := s.logger().With(zap.String("username", cmd.Username))

	snap, fromCache, err := s.load(ctx, cmd.Username)
	if err != nil {
		log.Error("load profile failed", zap.Error(err))
		return nil, err
	}
	now := s.Clock.Now()

	served := snap.Posts
	if cmd.Filters != nil {
		served = profile.ApplyFilters(snap.Posts, filters, now)
		log.Debug("filters applied", zap.Int("before", len(snap.Posts)), zap.Int("after", len(served)))
	}
	served = s.enrich(ctx, served, opts.OCRCap)
	p := snap.Profile.WithPosts(served)

	rep, err := s.Reports.Generate(ctx, p, served, cmd.TargetPersona, cmd.Briefing)
	if err != nil {
		return nil, err
	}

	if !fromCache && !profile.IsSynthetic(p) {
		// cache keeps the unfiltered posts so other filter combinations can reuse it
		all := served
		if cmd.Filters != nil {
			all = s.enrich(ctx, snap.Posts, opts.OCRCap)
		}
		s.writeCache(ctx, log, cmd.Username, profile.Snapshot{Profile: snap.Profile, Posts: all}, opts.SingleTTL)
	} else if profile.IsSynthetic(p) {
		log.Debug("skipping cache for synthetic profile")
	}

	rec, err := s.appendHistory(ctx, cmd.Username, p, *rep)
	if err != nil {
		return nil, err
	}

	return &AnalyzeResult{Profile: p, Report: rep, FromCache: fromCache, HistoryID: rec.ID}, nil
}

// History returns the most recent records, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]*history.Record, error) {
	return s.Records.ListRecent(ctx, limit)
}

// HistoryByID returns history.ErrNotFound for unknown ids.
func (s *Service) HistoryByID(ctx context.Context, id history.RecordID) (*history.Record, error) {
	return s.Records.GetByID(ctx, id)
}

//
// ==== helpers ====
//

// load returns the cached snapshot when fresh, otherwise scrapes.
func (s *Service) load(ctx context.Context, username string) (profile.Snapshot, bool, error) {
	if s.Cache != nil {
		e, err := s.Cache.Get(ctx, username, s.Clock.Now())
		if err != nil {
			s.logger().Warn("cache lookup failed", zap.String("username", username), zap.Error(err))
		} else if e != nil {
			return e.Snapshot, true, nil
		}
	}
	snap, err := s.Scraper.Scrape(ctx, username)
	if err != nil {
		return profile.Snapshot{}, false, fmt.Errorf("scrape @%s: %w", username, err)
	}
	if snap == nil {
		return profile.Snapshot{}, false, fmt.Errorf("scrape @%s: %w", username, profile.ErrNotFound)
	}
	return *snap, false, nil
}

func (s *Service) writeCache(ctx context.Context, log *zap.Logger, username string, snap profile.Snapshot, ttl time.Duration) {
	if s.Cache == nil {
		return
	}
	snap.Profile.Posts = nil
	if err := s.Cache.Put(ctx, cache.NewEntry(username, snap, s.Clock.Now(), ttl)); err != nil {
		log.Warn("cache write failed", zap.Error(err))
	}
}

func (s *Service) appendHistory(ctx context.Context, username string, p profile.Profile, rep report.Report) (*history.Record, error) {
	rec := &history.Record{
		ID:        history.RecordID(uuid.New().String()),
		Username:  username,
		Profile:   p,
		Report:    rep,
		CreatedAt: s.Clock.Now(),
	}
	if s.Archive != nil {
		s.archive(ctx, rec)
	}
	if err := s.Records.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}
	return rec, nil
}

// archive uploads the record as JSON. Failures are logged only.
func (s *Service) archive(ctx context.Context, rec *history.Record) {
	body, err := json.Marshal(rec)
	if err != nil {
		s.logger().Warn("archive: encode record failed", zap.Error(err))
		return
	}
	key := fmt.Sprintf("history/%s/%s/%s.json", rec.CreatedAt.UTC().Format("2006-01-02"), rec.Username, rec.ID)
	url, err := s.Archive.Put(ctx, key, body, "application/json")
	if err != nil {
		s.logger().Warn("archive upload failed", zap.String("key", key), zap.Error(err))
		return
	}
	rec.ArchiveURL = url
}

func (s *Service) observe(fromCache bool, err error) {
	if s.OnAnalysis != nil {
		s.OnAnalysis(fromCache, err)
	}
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func normalizeUsername(u string) string {
	return strings.TrimPrefix(strings.TrimSpace(u), "@")
}

func validateCommon(username, persona, briefing string) error {
	if err := profile.ValidateUsername(username); err != nil {
		return invalid(err)
	}
	if err := validatePersona(persona); err != nil {
		return err
	}
	if err := appreport.ValidateBriefing(briefing); err != nil {
		return invalid(err)
	}
	return nil
}

func validatePersona(persona string) error {
	if persona == "" || persona == string(report.PersonaNone) || report.Persona(persona).Valid() {
		return nil
	}
	return invalidf(ErrInvalidPersona, "%q", persona)
}
