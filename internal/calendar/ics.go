package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Default calendar metadata for the generated file.
const (
	DefaultProdID      = "-//FC St. Pauli Presale Calendar//presale-calendar//DE"
	DefaultName        = "FC St. Pauli Ticketvorverkauf"
	DefaultDescription = "Vorverkaufstermine für Vereinsmitglieder (Heimspiele Bundesliga & DFB-Pokal)"
)

// Calendar holds the calendar-level metadata emitted ahead of the events.
type Calendar struct {
	ProdID      string
	Name        string
	Description string
	Timezone    string
}

// New creates a Calendar with the default club metadata for the given
// timezone identifier.
func New(timezone string) *Calendar {
	return &Calendar{
		ProdID:      DefaultProdID,
		Name:        DefaultName,
		Description: DefaultDescription,
		Timezone:    timezone,
	}
}

// Encode serializes the events into an iCalendar (.ics) byte stream.
// Zero events still produce a structurally valid, empty calendar.
func (c *Calendar) Encode(events []*Event) []byte {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", c.ProdID))
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(c.Name)))
	ics.WriteString(fmt.Sprintf("X-WR-CALDESC:%s\r\n", escapeICS(c.Description)))
	ics.WriteString(fmt.Sprintf("X-WR-TIMEZONE:%s\r\n", c.Timezone))

	for _, evt := range events {
		c.writeEvent(&ics, evt)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return []byte(ics.String())
}

// writeEvent emits one VEVENT block including its VALARM components.
func (c *Calendar) writeEvent(ics *strings.Builder, evt *Event) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s\r\n", evt.UID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTimeUTC(evt.CreatedAt)))

	// Event times stay in their zone via TZID so they survive DST shifts.
	ics.WriteString(fmt.Sprintf("DTSTART;TZID=%s:%s\r\n", c.Timezone, formatICSTimeLocal(evt.Start)))
	ics.WriteString(fmt.Sprintf("DTEND;TZID=%s:%s\r\n", c.Timezone, formatICSTimeLocal(evt.End)))

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Summary)))
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(evt.Description)))

	if evt.URL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", evt.URL))
	}

	for _, alarm := range evt.Alarms {
		ics.WriteString("BEGIN:VALARM\r\n")
		ics.WriteString("ACTION:DISPLAY\r\n")
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(alarm.Description)))
		if !alarm.TriggerAt.IsZero() {
			ics.WriteString(fmt.Sprintf("TRIGGER;VALUE=DATE-TIME:%s\r\n", formatICSTimeUTC(alarm.TriggerAt)))
		} else {
			ics.WriteString(fmt.Sprintf("TRIGGER:%s\r\n", formatICSDuration(alarm.Trigger)))
		}
		ics.WriteString("END:VALARM\r\n")
	}

	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTimeUTC formats a time.Time as an iCalendar UTC datetime string
func formatICSTimeUTC(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSTimeLocal formats a time.Time as a floating local datetime
// string, meant to be paired with a TZID parameter.
func formatICSTimeLocal(t time.Time) string {
	return t.Format("20060102T150405")
}

// formatICSDuration formats a duration per RFC 5545, e.g. -PT15M or -PT6H.
// Zero components are omitted; a zero duration is PT0S.
func formatICSDuration(d time.Duration) string {
	var b strings.Builder

	if d < 0 {
		b.WriteString("-")
		d = -d
	}
	d = d.Round(time.Second)

	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60
	seconds := int(d/time.Second) % 60

	b.WriteString("P")
	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if hours > 0 || minutes > 0 || seconds > 0 || days == 0 {
		b.WriteString("T")
		if hours > 0 {
			fmt.Fprintf(&b, "%dH", hours)
		}
		if minutes > 0 {
			fmt.Fprintf(&b, "%dM", minutes)
		}
		if seconds > 0 || (hours == 0 && minutes == 0) {
			fmt.Fprintf(&b, "%dS", seconds)
		}
	}

	return b.String()
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
