// Package format holds the small rendering and validation helpers the
// timeline view depends on: timestamp rendering in the viewer's zone,
// hash truncation, payload trimming, and date range validation.
package format

import (
	"encoding/json"
	"fmt"
	"time"
)

// InvalidDateText is rendered when a timestamp cannot be parsed.
// Callers are expected not to pass unparseable input on the happy path.
const InvalidDateText = "Invalid Date"

// DefaultPayloadLength is the rendering cap for event payloads.
const DefaultPayloadLength = 180

// inputLayouts are the local datetime forms accepted from user input,
// most specific first.
var inputLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseInstant parses an ISO-8601 instant, falling back to local
// datetime-input forms interpreted in loc.
func parseInstant(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	for _, layout := range inputLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// FormatDateTime renders a full date+time (24-hour clock) in loc.
func FormatDateTime(value string, loc *time.Location) string {
	parsed, ok := parseInstant(value, loc)
	if !ok {
		return InvalidDateText
	}
	return parsed.In(loc).Format("2006-01-02 15:04:05")
}

// FormatDateOnly renders the date component in loc. Used for the
// coarsest (ONE_DAY) bucket granularity.
func FormatDateOnly(value string, loc *time.Location) string {
	parsed, ok := parseInstant(value, loc)
	if !ok {
		return InvalidDateText
	}
	return parsed.In(loc).Format("2006-01-02")
}

// ShortHash returns a truncated rendering of a transaction hash:
// first 8 characters + "..." + last 6. Hashes shorter than 14
// characters pass through unchanged; empty input renders as "N/A".
func ShortHash(hash string) string {
	if hash == "" {
		return "N/A"
	}
	if len(hash) < 14 {
		return hash
	}
	return hash[:8] + "..." + hash[len(hash)-6:]
}

// TrimPayload serializes payload to JSON and caps the rendering at
// maxLength characters. A nil payload serializes as an empty object.
func TrimPayload(payload interface{}, maxLength int) string {
	raw := []byte("{}")
	if payload != nil {
		serialized, err := json.Marshal(payload)
		if err == nil {
			raw = serialized
		}
	}
	if len(raw) <= maxLength {
		return string(raw)
	}
	return string(raw[:maxLength-3]) + "..."
}

// ValidateDateRange checks a since/until pair of datetime-input
// values. Empty pair and ordered pair are acceptable; the returned
// string is the validation message, "" when the pair is acceptable.
func ValidateDateRange(since, until string, loc *time.Location) string {
	if (since != "" && until == "") || (since == "" && until != "") {
		return "Provide both start and end dates, or leave both empty."
	}
	if since != "" && until != "" {
		sinceAt, okSince := parseInstant(since, loc)
		untilAt, okUntil := parseInstant(until, loc)
		if okSince && okUntil && sinceAt.After(untilAt) {
			return "Date range is invalid: start date must be before end date."
		}
	}
	return ""
}

// ToISOOrNull converts a local datetime-input value to an absolute
// ISO-8601 instant. Empty or unparseable input yields nil.
func ToISOOrNull(value string, loc *time.Location) *string {
	parsed, ok := parseInstant(value, loc)
	if !ok {
		return nil
	}
	iso := parsed.UTC().Format("2006-01-02T15:04:05.000Z")
	return &iso
}

// ToDateTimeInputValue renders an ISO instant as a zero-padded local
// "YYYY-MM-DDTHH:mm" value, the form datetime inputs use. Empty or
// unparseable input yields "".
func ToDateTimeInputValue(value string, loc *time.Location) string {
	parsed, ok := parseInstant(value, loc)
	if !ok {
		return ""
	}
	local := parsed.In(loc)
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d",
		local.Year(), int(local.Month()), local.Day(), local.Hour(), local.Minute())
}
