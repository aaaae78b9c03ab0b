package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	DefaultFeedURL = "https://www.fcstpauli.com/rss.xml"
	UserAgent      = "presale-calendar/1.0 (github.com/millerntor/presale-calendar)"
	Timeout        = 30 * time.Second
)

// Entry is a single feed item. Published is the zero time when the item
// carries no parsable pubDate; callers fall back to their own clock.
type Entry struct {
	Title       string
	Description string
	Link        string
	Published   time.Time
}

// Feed is the decoded feed. Warning is non-empty when the XML only decoded
// in lenient mode: the feed is usable but malformed, worth logging.
type Feed struct {
	Title   string
	Entries []Entry
	Warning string
}

// rss mirrors the subset of the RSS 2.0 document we consume.
type rss struct {
	XMLName xml.Name `xml:"rss"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title string `xml:"title"`
	Items []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
}

// Fetcher retrieves and decodes the club's RSS feed
type Fetcher struct {
	client *http.Client
}

// New creates a new Fetcher instance
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
	}
}

// Fetch retrieves the feed from an http(s) URL or a local file path and
// decodes it. A malformed feed that still decodes leniently is returned
// with Feed.Warning set rather than an error.
func (f *Fetcher) Fetch(src string) (*Feed, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return f.fetchURL(src)
	}
	return f.fetchFile(src)
}

func (f *Fetcher) fetchURL(url string) (*Feed, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return Parse(resp.Body)
}

func (f *Fetcher) fetchFile(path string) (*Feed, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feed file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse decodes RSS XML into a Feed. It first decodes strictly; if that
// fails it retries with a lenient decoder and flags the feed with a
// warning, so a sloppily generated feed still produces entries.
func Parse(r io.Reader) (*Feed, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}

	var doc rss
	strictErr := xml.Unmarshal(data, &doc)

	warning := ""
	if strictErr != nil {
		// A failed strict decode may have filled doc partially; retry
		// leniently into a fresh value.
		var lenient rss
		dec := xml.NewDecoder(bytes.NewReader(data))
		dec.Strict = false
		dec.Entity = xml.HTMLEntity
		if err := dec.Decode(&lenient); err != nil {
			return nil, fmt.Errorf("parsing feed: %w", strictErr)
		}
		doc = lenient
		warning = fmt.Sprintf("feed decoded leniently: %v", strictErr)
	}

	feed := &Feed{
		Title:   strings.TrimSpace(doc.Channel.Title),
		Entries: make([]Entry, 0, len(doc.Channel.Items)),
		Warning: warning,
	}

	for _, it := range doc.Channel.Items {
		feed.Entries = append(feed.Entries, Entry{
			Title:       strings.TrimSpace(it.Title),
			Description: it.Description,
			Link:        strings.TrimSpace(it.Link),
			Published:   parsePubDate(it.PubDate),
		})
	}

	return feed, nil
}

// pubDateFormats covers the RFC 822/1123 variants seen in RSS feeds in the
// wild, including single-digit days and "GMT"/"+0000" zone spellings.
var pubDateFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2006-01-02T15:04:05Z07:00",
}

// parsePubDate attempts to parse an RSS pubDate string.
// Returns time.Time{} (zero value) if parsing fails.
func parsePubDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range pubDateFormats {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t
		}
	}

	return time.Time{}
}
