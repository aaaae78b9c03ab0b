package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/millerntor/presale-calendar/internal/feed"
)

func mustLoadBerlin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("loading Europe/Berlin: %v", err)
	}
	return loc
}

func checkFeed(berlin *time.Location) *feed.Feed {
	published := time.Date(2025, time.September, 1, 10, 0, 0, 0, berlin)
	return &feed.Feed{
		Title: "FC St. Pauli News",
		Entries: []feed.Entry{
			{
				Title:       "Ticket-Infos zum Heimspiel gegen den 1. FC Union Berlin",
				Description: "Ab Donnerstag (23.10., 15 Uhr) können Vereinsmitglieder Karten kaufen.",
				Link:        "https://www.fcstpauli.com/news/union",
				Published:   published,
			},
			{
				Title:       "Ticket-Infos zum Heimspiel gegen den FC Augsburg",
				Description: "Ab Donnerstag (14.8., 15 Uhr) können Vereinsmitglieder Karten kaufen.",
				Link:        "https://www.fcstpauli.com/news/augsburg",
				Published:   time.Date(2025, time.August, 1, 10, 0, 0, 0, berlin),
			},
			{
				Title:       "Ticket-Infos zum Auswärtsspiel beim SC Freiburg",
				Description: "Infos zum Gästeblock.",
				Link:        "https://www.fcstpauli.com/news/freiburg",
				Published:   published,
			},
			{
				Title:       "Ticket-Infos zum Testspiel",
				Description: "<p>Der freie Verkauf startet bald.</p>",
				Link:        "https://www.fcstpauli.com/news/testspiel",
				Published:   published,
			},
			{
				Title:       "Neues aus dem Museum",
				Description: "Keine Tickets hier.",
				Link:        "https://www.fcstpauli.com/news/museum",
				Published:   published,
			},
		},
	}
}

func TestBuildCheckResult(t *testing.T) {
	berlin := mustLoadBerlin(t)

	result := buildCheckResult(checkFeed(berlin), berlin, "test-feed")

	if result.TotalEntries != 5 {
		t.Errorf("TotalEntries = %d, want 5", result.TotalEntries)
	}
	if len(result.Parsed) != 2 {
		t.Fatalf("got %d parsed, want 2", len(result.Parsed))
	}
	if len(result.Unparsed) != 2 {
		t.Fatalf("got %d unparsed, want 2 (away game + testspiel)", len(result.Unparsed))
	}

	// Parsed entries are sorted by presale time, earliest first.
	if result.Parsed[0].Opponent != "FC Augsburg" {
		t.Errorf("Parsed[0].Opponent = %q, want FC Augsburg (earlier presale)", result.Parsed[0].Opponent)
	}
	if result.Parsed[1].Opponent != "1. FC Union Berlin" {
		t.Errorf("Parsed[1].Opponent = %q, want 1. FC Union Berlin", result.Parsed[1].Opponent)
	}

	// The museum entry is not a Ticket-Infos entry and is not listed at all.
	for _, u := range result.Unparsed {
		if strings.Contains(u.Title, "Museum") {
			t.Error("non-ticket entries must not appear in the unparsed listing")
		}
	}
}

func TestWriteCheckResult_Text(t *testing.T) {
	berlin := mustLoadBerlin(t)
	result := buildCheckResult(checkFeed(berlin), berlin, "test-feed")

	var buf bytes.Buffer
	if err := WriteCheckResult(&buf, result, FormatText, true); err != nil {
		t.Fatalf("WriteCheckResult() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Total entries in feed: 5",
		"Ticket-Infos entries: 4",
		"Successfully parsed presales: 2",
		"Unparsed Ticket-Infos: 2",
		"1. FC Augsburg (Bundesliga)",
		"Presale: 14.08.2025 15:00 Uhr",
		"UNPARSED TICKET-INFOS (FOR MANUAL REVIEW)",
		"Ticket-Infos zum Testspiel",
		"Snippet: Der freie Verkauf startet bald.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCheckResult_JSON(t *testing.T) {
	berlin := mustLoadBerlin(t)
	result := buildCheckResult(checkFeed(berlin), berlin, "test-feed")

	var buf bytes.Buffer
	if err := WriteCheckResult(&buf, result, FormatJSON, false); err != nil {
		t.Fatalf("WriteCheckResult() error: %v", err)
	}

	var decoded CheckResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSON output does not decode: %v", err)
	}
	if decoded.Source != "test-feed" {
		t.Errorf("Source = %q", decoded.Source)
	}
	if len(decoded.Parsed) != 2 || len(decoded.Unparsed) != 2 {
		t.Errorf("decoded counts = %d parsed / %d unparsed, want 2/2",
			len(decoded.Parsed), len(decoded.Unparsed))
	}
}

func TestWriteCheckResult_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCheckResult(&buf, &CheckResult{}, OutputFormat("xml"), false); err == nil {
		t.Error("WriteCheckResult() should fail on unknown format")
	}
}
