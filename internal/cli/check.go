package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/millerntor/presale-calendar/internal/feed"
	"github.com/millerntor/presale-calendar/internal/logger"
	"github.com/millerntor/presale-calendar/internal/presale"
	"github.com/spf13/cobra"
)

var (
	flagCheckFormat  string
	flagCheckVerbose bool
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show parser results for every ticket announcement in the feed",
		Long: `Fetches the feed and lists every Ticket-Infos entry, split into
successfully parsed presales and unparsed entries for manual review.
Uses exactly the same extraction logic as calendar generation.`,
		RunE: runCheck,
	}

	cmd.Flags().StringVar(&flagCheckFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagCheckVerbose, "verbose", false, "Include description snippets for unparsed entries")

	return cmd
}

// runCheck fetches the feed and reports, per Ticket-Infos entry, how the
// extractor handled it.
func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	format := OutputFormat(strings.ToLower(flagCheckFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagCheckFormat)
	}

	loc, err := setup(cfg)
	if err != nil {
		return err
	}

	fetcher := feed.New()
	f, err := fetcher.Fetch(cfg.FeedURL)
	if err != nil {
		return fmt.Errorf("fetching feed: %w", err)
	}
	if f.Warning != "" {
		logger.Warn("feed parsed with warnings", logger.Fields{"warning": f.Warning})
	}

	result := buildCheckResult(f, loc, cfg.FeedURL)

	return WriteCheckResult(os.Stdout, result, format, flagCheckVerbose)
}

// buildCheckResult runs the extractor over every entry and splits the
// Ticket-Infos entries into parsed and unparsed groups.
func buildCheckResult(f *feed.Feed, loc *time.Location, source string) *CheckResult {
	extractor := presale.NewExtractor(loc, logger.Default())

	result := &CheckResult{
		CheckedAt:    time.Now().UTC(),
		Source:       source,
		TotalEntries: len(f.Entries),
	}

	for _, entry := range f.Entries {
		if !presale.Classify(entry.Title).IsTicketInfo {
			continue
		}

		if rec := extractor.Extract(entry); rec != nil {
			result.Parsed = append(result.Parsed, ParsedPresale{
				Opponent:    rec.Opponent,
				Competition: string(rec.Competition),
				PresaleTime: rec.PresaleTime,
				Title:       rec.Title,
				Link:        rec.Link,
			})
			continue
		}

		// Not parsed: away game, no presale date, test match announcement...
		result.Unparsed = append(result.Unparsed, UnparsedEntry{
			Title:   entry.Title,
			Link:    entry.Link,
			Snippet: checkSnippet(entry.Description),
		})
	}

	sortParsed(result.Parsed)

	return result
}

// checkSnippet produces a short plain-text preview of a description for
// manual review of unparsed entries.
func checkSnippet(description string) string {
	clean := strings.Join(strings.Fields(presale.StripMarkup(description)), " ")
	r := []rune(clean)
	if len(r) <= 160 {
		return clean
	}
	return string(r[:160]) + "…"
}
