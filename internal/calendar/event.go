package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/millerntor/presale-calendar/internal/presale"
)

const (
	// uidDomain suffixes every event UID.
	uidDomain = "fcstpauli.com"

	// eventDuration is the display length of a presale event. The real
	// presale window has no announced end, so the event is a one-hour block.
	eventDuration = time.Hour

	// reminderLead is the offset of the fixed short-notice reminder.
	reminderLead = 15 * time.Minute

	// morningReminderHour anchors the same-day reminder at 09:00 local time.
	morningReminderHour = 9
)

// Alarm is a display reminder attached to an event. Trigger is an offset
// relative to the event start (negative = before start); TriggerAt, when
// non-zero, is an absolute trigger time and takes precedence.
type Alarm struct {
	Description string
	Trigger     time.Duration
	TriggerAt   time.Time
}

// Event is one calendar event payload, ready for ICS encoding.
type Event struct {
	UID         string
	Summary     string
	Description string
	URL         string
	Start       time.Time
	End         time.Time
	CreatedAt   time.Time
	Alarms      []Alarm
}

// BuildEvent assembles the calendar event for a presale record.
//
// The UID is deterministic (presale time plus hyphenated opponent), so
// regenerating the calendar from the same feed yields identical UIDs and
// calendar clients can deduplicate across imports.
func BuildEvent(rec *presale.Record, loc *time.Location, now time.Time) *Event {
	start := rec.PresaleTime

	evt := &Event{
		UID: fmt.Sprintf("%s-%s@%s",
			start.Format("200601021504"),
			strings.ReplaceAll(rec.Opponent, " ", "-"),
			uidDomain),
		Summary: fmt.Sprintf("Ticketvorverkauf: %s (%s)", rec.Opponent, rec.Competition),
		Description: fmt.Sprintf(
			"Vorverkauf für Vereinsmitglieder\n"+
				"Spiel: %s vs. %s\n"+
				"Wettbewerb: %s\n"+
				"Vorverkaufsstart: %s\n\n"+
				"Weitere Informationen:\n%s",
			presale.ClubName, rec.Opponent, rec.Competition,
			start.Format("02.01.2006 um 15:04 Uhr"), rec.Link),
		URL:       rec.Link,
		Start:     start,
		End:       start.Add(eventDuration),
		CreatedAt: now,
	}

	// Same-day reminder at 09:00 local time, skipped when the presale
	// starts at or before 09:00 (a reminder must not fire after the start).
	morning := time.Date(start.Year(), start.Month(), start.Day(), morningReminderHour, 0, 0, 0, loc)
	if morning.Before(start) {
		evt.Alarms = append(evt.Alarms, Alarm{
			Description: "Heute: Ticketvorverkauf " + rec.Opponent,
			Trigger:     morning.Sub(start),
		})
	}

	evt.Alarms = append(evt.Alarms, Alarm{
		Description: "In 15 Minuten: Ticketvorverkauf " + rec.Opponent,
		Trigger:     -reminderLead,
	})

	return evt
}
