package presale

import "time"

// Competition is the competition a home match belongs to.
type Competition string

const (
	CompetitionBundesliga Competition = "Bundesliga"
	CompetitionDFBPokal   Competition = "DFB-Pokal"
)

const (
	// titleMarker prefixes every ticket announcement in the feed.
	titleMarker = "Ticket-Infos"

	// derbyOpponent is the fixed opponent for Hamburg derby announcements,
	// which never name the opponent in a parseable way.
	derbyOpponent = "Hamburger SV"

	// unknownOpponent is the placeholder when no opponent can be extracted.
	unknownOpponent = "Gegner unbekannt"

	// ClubName is used in generated event descriptions.
	ClubName = "FC St. Pauli"
)

// Record is one extracted presale announcement. PresaleTime is absolute and
// localized; Title, Link, and Description carry the original entry fields
// through unchanged.
type Record struct {
	PresaleTime time.Time
	Opponent    string
	Competition Competition
	Title       string
	Link        string
	Description string
}
