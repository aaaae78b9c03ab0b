// Package feed fetches and decodes the FC St. Pauli RSS news feed.
//
// The feed package retrieves the feed over HTTP or from a local file and
// decodes it into entries with title, description, link, and publication
// date. Malformed XML is retried with a lenient decoder and surfaced as a
// non-fatal warning, mirroring how feed readers tolerate sloppy feeds.
package feed
