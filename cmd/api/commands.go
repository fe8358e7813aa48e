package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/leadscope/internal/application/analysis"
	"github.com/bryanwahyu/leadscope/internal/domain/history"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/middleware"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the cache and history tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		st, err := openStores(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", cfg.Database.Driver)
		return nil
	},
}

var (
	briefing   string
	persona    string
	dateRange  string
	minLikes   int
	historyMax int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <username>",
	Short: "Analyze one profile and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		st, err := openStores(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()
		svc, err := buildService(cmd.Context(), cfg, log, st)
		if err != nil {
			return err
		}

		c := analysis.AnalyzeCommand{Username: args[0], TargetPersona: persona, Briefing: briefing}
		if cmd.Flags().Changed("range") || cmd.Flags().Changed("min-likes") {
			c.Filters = &profile.Filters{DateRange: profile.DateRange(dateRange), MinEngagement: minLikes}
		}
		res, err := svc.Analyze(cmd.Context(), c)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch <username>...",
	Short: "Analyze several profiles in order, pacing between them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		st, err := openStores(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()
		svc, err := buildService(cmd.Context(), cfg, log, st)
		if err != nil {
			return err
		}
		res, err := svc.AnalyzeBatch(cmd.Context(), analysis.BatchCommand{
			Usernames:     args,
			TargetPersona: persona,
			Briefing:      briefing,
		})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List recent analyses, or print one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		st, err := openStores(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer st.Close()
		svc := &analysis.Service{Records: st.records}

		if len(args) == 1 {
			rec, err := svc.HistoryByID(cmd.Context(), history.RecordID(args[0]))
			if err != nil {
				return err
			}
			return printJSON(rec)
		}
		list, err := svc.History(cmd.Context(), middleware.ValidateLimit(historyMax))
		if err != nil {
			return err
		}
		return printJSON(list)
	},
}

func init() {
	for _, c := range []*cobra.Command{analyzeCmd, batchCmd} {
		c.Flags().StringVarP(&briefing, "briefing", "b", "", "what you sell and to whom (min 10 characters)")
		c.Flags().StringVarP(&persona, "persona", "p", "", "target persona: curious, prospect, customer, influencer, none")
	}
	analyzeCmd.Flags().StringVar(&dateRange, "range", "all", "post date range: all, week, month, 3months")
	analyzeCmd.Flags().IntVar(&minLikes, "min-likes", 0, "drop posts with fewer likes")
	historyCmd.Flags().IntVarP(&historyMax, "limit", "n", 10, "number of records (max 100)")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
