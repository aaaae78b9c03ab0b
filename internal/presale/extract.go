package presale

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/millerntor/presale-calendar/internal/feed"
	"github.com/millerntor/presale-calendar/internal/logger"
)

// presalePattern finds the presale date in cleaned description prose.
//
// It matches a parenthesized partial date like "(23.10., 15 Uhr)",
// "(7.10., 15:30 Uhr)" or "(15.1., ab 15 Uhr)" (the "ab" prefix is
// optional, minutes default to 00) that is later confirmed by the phrase
// "können Vereinsmitglieder" with only non-parenthesis characters in
// between. Descriptions contain several dates (match date, presale date);
// requiring the confirmation phrase after the nearest preceding
// parenthesized date disambiguates which one starts the presale.
var presalePattern = regexp.MustCompile(
	`(?is)\((?P<day>\d{1,2})\.(?P<month>\d{1,2})\.,?\s+(?:ab\s+)?(?P<hour>\d{1,2})(?::(?P<minute>\d{2}))?\s+Uhr\)[^(]*können\s+Vereinsmitglieder`,
)

// Extractor turns feed entries into presale Records.
type Extractor struct {
	loc *time.Location
	log *logger.Logger
}

// NewExtractor creates an Extractor resolving presale times in loc.
// A nil log falls back to the package default logger.
func NewExtractor(loc *time.Location, log *logger.Logger) *Extractor {
	if log == nil {
		log = logger.Default()
	}
	return &Extractor{loc: loc, log: log}
}

// Extract returns the presale Record announced by entry, or nil when the
// entry is not a home game ticket announcement or no presale date can be
// found. All per-entry failures are contained here; Extract never aborts
// the batch.
func (e *Extractor) Extract(entry feed.Entry) *Record {
	c := Classify(entry.Title)
	if !c.IsTicketInfo {
		return nil
	}
	if !c.IsHome {
		e.log.Debug("skipping away game", logger.Fields{"title": entry.Title})
		return nil
	}

	e.log.Debug("found ticket announcement", logger.Fields{"title": entry.Title})

	presaleTime, ok := e.extractPresaleTime(entry)
	if !ok {
		return nil
	}

	return &Record{
		PresaleTime: presaleTime,
		Opponent:    c.Opponent,
		Competition: c.Competition,
		Title:       entry.Title,
		Link:        entry.Link,
		Description: entry.Description,
	}
}

// extractPresaleTime finds the presale date phrase in the entry description
// and resolves it against the publication date.
func (e *Extractor) extractPresaleTime(entry feed.Entry) (time.Time, bool) {
	clean := StripMarkup(entry.Description)

	m := presalePattern.FindStringSubmatch(clean)
	if m == nil {
		e.log.Debug("no presale pattern match", logger.Fields{
			"title":   entry.Title,
			"snippet": snippet(clean, 200),
		})
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[presalePattern.SubexpIndex("day")])
	month, _ := strconv.Atoi(m[presalePattern.SubexpIndex("month")])
	hour, _ := strconv.Atoi(m[presalePattern.SubexpIndex("hour")])
	minute := 0
	if v := m[presalePattern.SubexpIndex("minute")]; v != "" {
		minute, _ = strconv.Atoi(v)
	}

	anchor := entry.Published
	if anchor.IsZero() {
		// Should not happen with a healthy feed; fall back to now.
		e.log.Warn("entry has no publication date, using current time", logger.Fields{
			"title": entry.Title,
		})
		anchor = time.Now().In(e.loc)
	}

	resolved, err := ResolveDate(day, month, hour, minute, anchor, e.loc)
	if err != nil {
		e.log.Error("resolving presale date", logger.Fields{"title": entry.Title}, err)
		return time.Time{}, false
	}

	return resolved, true
}

// StripMarkup removes markup tags from a feed description and decodes
// HTML/XML character entities, leaving plain prose for pattern matching.
func StripMarkup(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// snippet truncates s for debug logging without splitting a rune.
func snippet(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
