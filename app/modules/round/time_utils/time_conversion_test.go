package roundtime

import (
	"testing"
	"time"
)

func TestSinceParser_Parse(t *testing.T) {
	now := time.Date(2026, 5, 14, 18, 30, 0, 0, time.UTC)
	p := NewSinceParser(nil)

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "empty", input: "  ", want: time.Time{}},
		{name: "date only", input: "2026-04-01", want: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{name: "day first", input: "03/04/2026", want: time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", input: "2026-05-01T08:00:00Z", want: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)},
		{name: "relative", input: "3 days ago", want: now.AddDate(0, 0, -3)},
		{name: "unrecognized", input: "whenever", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.input, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if tt.name == "relative" {
				if got.Year() != tt.want.Year() || got.YearDay() != tt.want.YearDay() {
					t.Errorf("Parse(%q) = %v, want day of %v", tt.input, got, tt.want)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSinceParser_UsesLocation(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	got, err := NewSinceParser(loc).Parse("2026-04-01", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != loc {
		t.Errorf("expected location %v, got %v", loc, got.Location())
	}
}
