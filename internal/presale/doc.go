// Package presale extracts structured ticket presale records from FC St.
// Pauli news feed entries.
//
// The package classifies entry titles as home or away game announcements,
// extracts the opponent and competition, finds the presale date phrase in
// the entry description, and resolves the partial date (day, month, hour,
// optional minute, no year) to an absolute, timezone-aware time using the
// entry's publication date as anchor. Dates that fall before their own
// announcement are rolled over to the following year.
package presale
