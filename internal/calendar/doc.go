// Package calendar assembles presale records into calendar event payloads
// and serializes them as an iCalendar (.ics) byte stream.
//
// Events carry deterministic UIDs so repeated runs over the same feed
// regenerate an identical calendar, and each event includes display alarms:
// a same-day 09:00 reminder (when the presale starts later than that) and a
// fixed reminder 15 minutes before the presale opens.
package calendar
