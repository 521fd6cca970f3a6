package dateutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestIsSameDay(t *testing.T) {
	tests := []struct {
		name  string
		date1 time.Time
		date2 time.Time
		want  bool
	}{
		{
			"Same date different time",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC),
			true,
		},
		{
			"Different date",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsSameDay(tt.date1, tt.date2)

			if result != tt.want {
				t.Errorf("IsSameDay(%v, %v) = %v, want %v",
					tt.date1, tt.date2, result, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			"ISO format YYYY-MM-DD",
			"2025-01-15",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"Russian format DD.MM.YYYY",
			"15.01.2025",
			time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"ISO with time",
			"2025-01-15T10:30:00",
			time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
			false,
		},
		{
			"Garbage",
			"next friday",
			time.Time{},
			true,
		},
		{
			"Empty",
			"",
			time.Time{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && !result.Equal(tt.want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}

func TestParseDateIn(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)

	result, err := ParseDateIn("2025-03-01", loc)
	if err != nil {
		t.Fatalf("ParseDateIn() error = %v", err)
	}

	expected := time.Date(2025, 3, 1, 0, 0, 0, 0, loc)
	if !result.Equal(expected) || result.Location() != loc {
		t.Errorf("ParseDateIn() = %v, want %v", result, expected)
	}

	today, err := ParseDateIn("today", loc)
	if err != nil {
		t.Fatalf("ParseDateIn(today) error = %v", err)
	}
	if !IsSameDay(today, time.Now().In(loc)) {
		t.Errorf("ParseDateIn(today) = %v, want today's date", today)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantFrom string
		wantTo   string
		wantErr  bool
	}{
		{"Single date", "2025-05-01", "2025-05-01", "2025-05-01", false},
		{"Range", "2025-12-24..2025-12-26", "2025-12-24", "2025-12-26", false},
		{"Inverted range is parsed as is", "2025-12-26..2025-12-24", "2025-12-26", "2025-12-24", false},
		{"Bad left bound", "xx..2025-12-24", "", "", true},
		{"Bad right bound", "2025-12-24..", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := ParseRange(tt.input)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRange(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if got := from.Format("2006-01-02"); got != tt.wantFrom {
				t.Errorf("ParseRange(%q) from = %v, want %v", tt.input, got, tt.wantFrom)
			}
			if got := to.Format("2006-01-02"); got != tt.wantTo {
				t.Errorf("ParseRange(%q) to = %v, want %v", tt.input, got, tt.wantTo)
			}
		})
	}
}
