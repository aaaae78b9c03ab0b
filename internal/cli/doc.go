// Package cli wires the command line interface: the root command fetches
// the club's news feed, extracts ticket presale announcements, and writes
// an iCalendar file; the check subcommand prints a diagnostic listing of
// how every ticket announcement in the feed was parsed.
//
// Diagnostics always go to stderr so the calendar output channel carries
// either valid calendar bytes or nothing.
package cli
