package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParsedPresale is one successfully extracted presale in a check listing.
type ParsedPresale struct {
	Opponent    string    `json:"opponent"`
	Competition string    `json:"competition"`
	PresaleTime time.Time `json:"presale_time"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
}

// UnparsedEntry is a Ticket-Infos entry the extractor produced no record
// for, listed for manual review.
type UnparsedEntry struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet,omitempty"`
}

// CheckResult is the full diagnostic listing of one check run.
type CheckResult struct {
	CheckedAt    time.Time       `json:"checked_at"`
	Source       string          `json:"source"`
	TotalEntries int             `json:"total_entries"`
	Parsed       []ParsedPresale `json:"parsed"`
	Unparsed     []UnparsedEntry `json:"unparsed"`
}

// sortParsed orders parsed presales by presale time, earliest first.
func sortParsed(parsed []ParsedPresale) {
	sort.Slice(parsed, func(i, j int) bool {
		return parsed[i].PresaleTime.Before(parsed[j].PresaleTime)
	})
}

// WriteCheckResult writes the result in the specified format
func WriteCheckResult(w io.Writer, result *CheckResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *CheckResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *CheckResult, verbose bool) error {
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintf(w, "Total entries in feed: %d\n", result.TotalEntries)
	fmt.Fprintf(w, "Ticket-Infos entries: %d\n", len(result.Parsed)+len(result.Unparsed))
	fmt.Fprintf(w, "Successfully parsed presales: %d\n", len(result.Parsed))
	fmt.Fprintf(w, "Unparsed Ticket-Infos: %d\n", len(result.Unparsed))
	fmt.Fprintln(w)

	if len(result.Parsed) > 0 {
		fmt.Fprintln(w, "SUCCESSFULLY PARSED PRESALES")
		for i, p := range result.Parsed {
			fmt.Fprintf(w, "%d. %s (%s)\n", i+1, p.Opponent, p.Competition)
			fmt.Fprintf(w, "   Presale: %s\n", p.PresaleTime.Format("02.01.2006 15:04 Uhr"))
			fmt.Fprintf(w, "   Title: %s\n", p.Title)
			fmt.Fprintf(w, "   Link: %s\n", p.Link)
			fmt.Fprintln(w)
		}
	} else {
		fmt.Fprintln(w, "NO PRESALES PARSED")
		fmt.Fprintln(w)
	}

	if len(result.Unparsed) > 0 {
		fmt.Fprintln(w, "UNPARSED TICKET-INFOS (FOR MANUAL REVIEW)")
		for _, u := range result.Unparsed {
			fmt.Fprintf(w, "  - %s\n", u.Title)
			fmt.Fprintf(w, "    Link: %s\n", u.Link)
			if verbose && u.Snippet != "" {
				fmt.Fprintf(w, "    Snippet: %s\n", u.Snippet)
			}
			fmt.Fprintln(w)
		}
	}

	return nil
}
