package format

import (
	"strings"
	"testing"
	"time"
)

func TestShortHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
		want string
	}{
		{"empty input", "", "N/A"},
		{"short hash passes through", "abcdef", "abcdef"},
		{"thirteen chars passes through", "1234567890123", "1234567890123"},
		{"fourteen chars truncates", "12345678901234", "12345678...901234"},
		{"long hash truncates", "12345678abcdefghijklmnop", "12345678...klmnop"},
	}

	for _, tt := range tests {
		got := ShortHash(tt.hash)
		if got != tt.want {
			t.Errorf("%s: ShortHash(%q) = %q, want %q", tt.name, tt.hash, got, tt.want)
		}
		if len(tt.hash) >= 14 && len(got) != 17 {
			t.Errorf("%s: truncated output length = %d, want 17", tt.name, len(got))
		}
	}
}

func TestTrimPayload(t *testing.T) {
	if got := TrimPayload(nil, DefaultPayloadLength); got != "{}" {
		t.Errorf("TrimPayload(nil) = %q, want {}", got)
	}

	payload := map[string]interface{}{"amount": "100", "to": "GABC"}
	serialized := TrimPayload(payload, DefaultPayloadLength)
	if !strings.Contains(serialized, `"amount":"100"`) {
		t.Errorf("unexpected serialization: %q", serialized)
	}

	// Short payloads are the identity.
	if got := TrimPayload(payload, len(serialized)); got != serialized {
		t.Errorf("expected no-op at exact length, got %q", got)
	}

	// Long payloads are capped with a trailing ellipsis.
	long := map[string]interface{}{"data": strings.Repeat("x", 400)}
	trimmed := TrimPayload(long, 50)
	if len(trimmed) != 50 {
		t.Errorf("trimmed length = %d, want 50", len(trimmed))
	}
	if !strings.HasSuffix(trimmed, "...") {
		t.Errorf("trimmed payload missing ellipsis: %q", trimmed)
	}
}

func TestValidateDateRange(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name  string
		since string
		until string
		want  string
	}{
		{"both empty", "", "", ""},
		{"only since", "2026-02-20T10:00", "", "Provide both"},
		{"only until", "", "2026-02-21T10:00", "Provide both"},
		{"inverted range", "2026-02-22T11:00", "2026-02-22T10:00", "start date must be before end date"},
		{"ordered range", "2026-02-22T09:00", "2026-02-22T10:00", ""},
		{"equal bounds", "2026-02-22T10:00", "2026-02-22T10:00", ""},
	}

	for _, tt := range tests {
		got := ValidateDateRange(tt.since, tt.until, loc)
		if tt.want == "" {
			if got != "" {
				t.Errorf("%s: expected no error, got %q", tt.name, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("%s: ValidateDateRange = %q, want substring %q", tt.name, got, tt.want)
		}
	}
}

func TestToISOOrNull(t *testing.T) {
	loc := time.UTC

	if got := ToISOOrNull("", loc); got != nil {
		t.Errorf("expected nil for empty input, got %q", *got)
	}
	if got := ToISOOrNull("not-a-date", loc); got != nil {
		t.Errorf("expected nil for unparseable input, got %q", *got)
	}

	got := ToISOOrNull("2026-02-22T10:30", loc)
	if got == nil {
		t.Fatal("expected ISO instant, got nil")
	}
	if *got != "2026-02-22T10:30:00.000Z" {
		t.Errorf("ToISOOrNull = %q, want 2026-02-22T10:30:00.000Z", *got)
	}
}

func TestToDateTimeInputValue(t *testing.T) {
	loc := time.UTC

	if got := ToDateTimeInputValue("", loc); got != "" {
		t.Errorf("expected empty for empty input, got %q", got)
	}
	if got := ToDateTimeInputValue("invalid", loc); got != "" {
		t.Errorf("expected empty for unparseable input, got %q", got)
	}
	if got := ToDateTimeInputValue("2026-02-22T10:30:00.000Z", loc); got != "2026-02-22T10:30" {
		t.Errorf("ToDateTimeInputValue = %q, want 2026-02-22T10:30", got)
	}
}

func TestInputValueRoundTrip(t *testing.T) {
	// A minute-precision instant survives the trip through
	// datetime-input form and back.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load zone: %v", err)
	}

	original := "2026-02-22T10:30:00.000Z"
	input := ToDateTimeInputValue(original, loc)
	back := ToISOOrNull(input, loc)
	if back == nil {
		t.Fatal("round trip produced nil")
	}
	if *back != original {
		t.Errorf("round trip = %q, want %q", *back, original)
	}
}

func TestFormatDateTime(t *testing.T) {
	loc := time.UTC

	if got := FormatDateTime("2026-02-22T10:30:45Z", loc); got != "2026-02-22 10:30:45" {
		t.Errorf("FormatDateTime = %q", got)
	}
	if got := FormatDateTime("garbage", loc); got != InvalidDateText {
		t.Errorf("expected %q for unparseable input, got %q", InvalidDateText, got)
	}
	if got := FormatDateOnly("2026-02-22T10:30:45Z", loc); got != "2026-02-22" {
		t.Errorf("FormatDateOnly = %q", got)
	}

	// Zone conversion applies before rendering.
	est, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load zone: %v", err)
	}
	if got := FormatDateTime("2026-02-22T01:30:00Z", est); got != "2026-02-21 20:30:00" {
		t.Errorf("FormatDateTime in EST = %q", got)
	}
}
