package geo

import (
	"math"
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Position
		wantErr bool
	}{
		{
			name:  "zurich main station",
			input: "8.540192,47.378177",
			want:  Position{Longitude: 8.540192, Latitude: 47.378177},
		},
		{
			name:  "whitespace around members",
			input: " 8.5 , 47.4 ",
			want:  Position{Longitude: 8.5, Latitude: 47.4},
		},
		{
			name:    "missing latitude",
			input:   "8.540192",
			wantErr: true,
		},
		{
			name:    "non numeric",
			input:   "east,north",
			wantErr: true,
		},
		{
			name:    "too many members",
			input:   "8.5,47.4,430",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePosition(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePosition(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePosition(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equals(tt.want) {
				t.Errorf("ParsePosition(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDistanceTo_KnownDistances(t *testing.T) {
	tests := []struct {
		name       string
		from, to   Position
		wantMeters float64
		tolerance  float64
	}{
		{
			name:       "Zurich to Bern (~95 km)",
			from:       NewPosition(8.540192, 47.378177),
			to:         NewPosition(7.439122, 46.948825),
			wantMeters: 95_000,
			tolerance:  2_000,
		},
		{
			name:       "same point returns zero",
			from:       NewPosition(8.540192, 47.378177),
			to:         NewPosition(8.540192, 47.378177),
			wantMeters: 0,
			tolerance:  0.001,
		},
		{
			name:       "equator quarter circumference",
			from:       NewPosition(0, 0),
			to:         NewPosition(90, 0),
			wantMeters: math.Pi / 2 * earthRadiusMeters,
			tolerance:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.from.DistanceTo(tt.to)
			if math.Abs(got-tt.wantMeters) > tt.tolerance {
				t.Errorf("DistanceTo() = %.1f m, want %.1f m (±%.0f)", got, tt.wantMeters, tt.tolerance)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	if !NewPosition(8.5, 47.4).IsValid() {
		t.Error("finite position should be valid")
	}
	if (Position{Longitude: math.Inf(1), Latitude: 47.4}).IsValid() {
		t.Error("infinite longitude should be invalid")
	}
	if (Position{Longitude: 8.5, Latitude: math.NaN()}).IsValid() {
		t.Error("NaN latitude should be invalid")
	}
}

func TestAsLonLatString(t *testing.T) {
	got := NewPosition(8.540192, 47.378177).AsLonLatString()
	want := "8.540192,47.378177"
	if got != want {
		t.Errorf("AsLonLatString() = %q, want %q", got, want)
	}
}
