package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/millerntor/presale-calendar/internal/calendar"
	"github.com/millerntor/presale-calendar/internal/config"
	"github.com/millerntor/presale-calendar/internal/feed"
	"github.com/millerntor/presale-calendar/internal/logger"
	"github.com/millerntor/presale-calendar/internal/presale"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig   string
	flagFeedURL  string
	flagTimezone string
	flagLogLevel string
	flagOutput   string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presale-calendar",
		Short: "Generate an iCalendar of FC St. Pauli ticket presale dates",
		Long: `Reads the FC St. Pauli RSS feed, extracts home game ticket presale
announcements for club members, and writes an iCalendar file with
reminder alarms to stdout (or a file via --output).

Logs go to stderr, so stdout can be redirected into an .ics file:

  presale-calendar > presale.ics`,
		RunE:          runGenerate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.PersistentFlags().StringVar(&flagFeedURL, "feed-url", "", "RSS feed URL or local file path (default: club feed)")
	cmd.PersistentFlags().StringVar(&flagTimezone, "timezone", "", "Timezone for presale dates (default: Europe/Berlin)")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default: info)")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Write calendar to this file instead of stdout ('-' = stdout)")

	cmd.AddCommand(newCheckCmd())

	return cmd
}

// resolveConfig merges defaults, the optional config file, and any flags
// set on the command line, in ascending precedence.
func resolveConfig() (config.Config, error) {
	cfg := config.Default()

	if flagConfig != "" {
		loaded, err := config.Load(flagConfig)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if flagFeedURL != "" {
		cfg.FeedURL = flagFeedURL
	}
	if flagTimezone != "" {
		cfg.Timezone = flagTimezone
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagOutput != "" {
		cfg.Output = flagOutput
	}

	return cfg, nil
}

// setup configures the default logger and resolves the timezone. A bad log
// level or an unknown timezone identifier fails the run before any feed
// processing begins.
func setup(cfg config.Config) (*time.Location, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", cfg.Timezone, err)
	}

	return loc, nil
}

// runGenerate is the root command logic: feed → records → events → ICS bytes.
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	loc, err := setup(cfg)
	if err != nil {
		return err
	}

	records, err := collectRecords(cfg, loc)
	if err != nil {
		return err
	}

	now := time.Now().In(loc)
	events := make([]*calendar.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, calendar.BuildEvent(rec, loc, now))
	}

	cal := calendar.New(cfg.Timezone)
	cal.Name = cfg.Calendar.Name
	cal.Description = cfg.Calendar.Description

	encodeStart := time.Now()
	data := cal.Encode(events)
	logger.RecordTiming("calendar.encode", time.Since(encodeStart))

	logger.Info("generated calendar", logger.Fields{"events": len(events)})
	logger.Debug("run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})

	return writeCalendar(cfg.Output, data)
}

// collectRecords fetches the feed and extracts all presale records, sorted
// by presale time. Per-entry failures are contained by the extractor; only
// the fetch itself can fail here.
func collectRecords(cfg config.Config, loc *time.Location) ([]*presale.Record, error) {
	logger.Info("fetching feed", logger.Fields{"source": cfg.FeedURL})

	fetcher := feed.New()
	fetchStart := time.Now()
	f, err := fetcher.Fetch(cfg.FeedURL)
	logger.RecordTiming("feed.fetch", time.Since(fetchStart))
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}

	if f.Warning != "" {
		logger.Warn("feed parsed with warnings", logger.Fields{"warning": f.Warning})
	}
	logger.Info("fetched feed", logger.Fields{"entries": len(f.Entries)})

	extractor := presale.NewExtractor(loc, logger.Default())

	records := make([]*presale.Record, 0)
	for _, entry := range f.Entries {
		logger.IncrCounter("entries.seen")

		rec := extractor.Extract(entry)
		if rec == nil {
			logger.IncrCounter("entries.skipped")
			continue
		}

		logger.IncrCounter("entries.parsed")
		logger.Info("found presale", logger.Fields{
			"opponent":    rec.Opponent,
			"competition": string(rec.Competition),
			"presale":     rec.PresaleTime.Format(time.RFC3339),
		})
		records = append(records, rec)
	}

	if len(records) == 0 {
		logger.Warn("no presale events found in feed", nil)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].PresaleTime.Before(records[j].PresaleTime)
	})

	return records, nil
}

// writeCalendar writes the encoded calendar bytes to stdout or a file.
func writeCalendar(output string, data []byte) error {
	if output == "" || output == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			return fmt.Errorf("writing calendar: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	logger.Info("wrote calendar", logger.Fields{"path": output})
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logger.Error("run failed", nil, err)
		os.Exit(ExitError)
	}
}
