package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestDaysBetweenInclusive(t *testing.T) {
	start := time.Date(2025, 1, 30, 15, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 2, 1, 0, 0, 0, time.UTC)

	days := DaysBetween(start, end)
	if len(days) != 4 {
		t.Fatalf("expected 4 days, got %d", len(days))
	}
	if !days[0].Equal(time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected first day: %v", days[0])
	}
	if !days[3].Equal(time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected last day: %v", days[3])
	}
}

func TestDaysBetweenSameDay(t *testing.T) {
	d := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := DaysBetween(d, d); len(got) != 1 {
		t.Fatalf("expected 1 day, got %d", len(got))
	}
	if got := DaysBetween(d.AddDate(0, 0, 1), d); got != nil {
		t.Fatalf("expected nil for reversed range, got %v", got)
	}
}

func TestVolatilityModelValidate(t *testing.T) {
	tests := []struct {
		name    string
		model   VolatilityModel
		wantErr any
	}{
		{"valid stddev", VolatilityModel{Kind: ModelStdDev, Window: 5}, nil},
		{"valid bollinger", VolatilityModel{Kind: ModelBollinger, Window: 20, Multiplier: 2}, nil},
		{"unknown tag", VolatilityModel{Kind: "garch", Window: 5}, &UnsupportedModelError{}},
		{"unknown tag beats bad window", VolatilityModel{Kind: "garch", Window: 0}, &UnsupportedModelError{}},
		{"window too small", VolatilityModel{Kind: ModelATR, Window: 1}, &InvalidParameterError{}},
		{"bollinger without multiplier", VolatilityModel{Kind: ModelBollinger, Window: 20}, &InvalidParameterError{}},
		{"bollinger nan multiplier", VolatilityModel{Kind: ModelBollinger, Window: 20, Multiplier: math.NaN()}, &InvalidParameterError{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()
			switch want := tt.wantErr.(type) {
			case nil:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			case *UnsupportedModelError:
				if !errors.As(err, &want) {
					t.Fatalf("expected UnsupportedModelError, got %v", err)
				}
			case *InvalidParameterError:
				if !errors.As(err, &want) {
					t.Fatalf("expected InvalidParameterError, got %v", err)
				}
			}
		})
	}
}

func TestAnalysisParamsValidateRange(t *testing.T) {
	p := AnalysisParams{
		Start: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	var rangeErr *InvalidRangeError
	if err := p.ValidateRange(); !errors.As(err, &rangeErr) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}

	p.End = p.Start.Add(3 * time.Hour)
	if err := p.ValidateRange(); err != nil {
		t.Fatalf("same-day range should be valid: %v", err)
	}
}

func TestVolatilityPointMarshalsUndefinedAsNull(t *testing.T) {
	points := []VolatilityPoint{
		{Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Value: math.NaN()},
		{Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Value: 0.25},
	}
	data, err := json.Marshal(points)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"value":null`) || !strings.Contains(got, `"value":0.25`) {
		t.Fatalf("unexpected json: %s", got)
	}
}

func TestParseModelKind(t *testing.T) {
	if got := ParseModelKind("  ATR "); got != ModelATR {
		t.Fatalf("expected atr, got %q", got)
	}
	if ParseModelKind("nope").IsSupported() {
		t.Fatal("unknown model should not be supported")
	}
}
