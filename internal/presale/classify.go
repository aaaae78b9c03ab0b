package presale

import (
	"regexp"
	"strings"
)

// opponentPattern captures the opponent after "gegen", skipping an optional
// German definite article and discarding a trailing 4-digit season suffix
// ("... gegen den 1. FC Union Berlin 2526").
var opponentPattern = regexp.MustCompile(`(?i)gegen\s+(?:den|die|das|der|dem)?\s*(.+?)(?:\s+\d{4})?$`)

// Classification is the result of inspecting an entry title.
type Classification struct {
	IsTicketInfo bool
	IsHome       bool
	Opponent     string
	Competition  Competition
}

// Classify inspects a feed entry title and decides whether it announces a
// home game ticket presale, and if so against whom and in which competition.
//
// Only titles beginning with "Ticket-Infos" are ticket announcements. Among
// those, "auswärtsspiel" or "beim" in the lowercased title each suffice to
// mark an away game. Opponent and competition are still extracted for away
// games so diagnostic listings can show them.
func Classify(title string) Classification {
	c := Classification{
		Opponent:    extractOpponent(title),
		Competition: extractCompetition(title),
	}

	if !strings.HasPrefix(title, titleMarker) {
		return c
	}
	c.IsTicketInfo = true

	lower := strings.ToLower(title)
	c.IsHome = !strings.Contains(lower, "auswärtsspiel") && !strings.Contains(lower, "beim")
	return c
}

// extractOpponent pulls the opponent name out of a title, with German
// articles stripped.
//
//	"Ticket-Infos zum Heimspiel gegen den 1. FC Union Berlin"
//	→ "1. FC Union Berlin"
//	"Ticket-Infos zum Derby-Heimspiel"
//	→ "Hamburger SV"
func extractOpponent(title string) string {
	// Derby titles never name the opponent explicitly.
	if strings.Contains(strings.ToLower(title), "derby") {
		return derbyOpponent
	}

	m := opponentPattern.FindStringSubmatch(title)
	if m == nil {
		return unknownOpponent
	}
	return strings.TrimSpace(m[1])
}

// extractCompetition maps a title to its competition: "pokal" anywhere in
// the lowercased title means DFB-Pokal, everything else is Bundesliga.
func extractCompetition(title string) Competition {
	if strings.Contains(strings.ToLower(title), "pokal") {
		return CompetitionDFBPokal
	}
	return CompetitionBundesliga
}
