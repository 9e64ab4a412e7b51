package domain

import (
	"math"
	"strings"
	"time"
)

// ModelKind tags which volatility estimator to run.
type ModelKind string

const (
	ModelStdDev     ModelKind = "stddev"
	ModelATR        ModelKind = "atr"
	ModelHistorical ModelKind = "historical"
	ModelBollinger  ModelKind = "bollinger"
	ModelSMA        ModelKind = "sma"
)

// SupportedModels lists every model tag in menu order.
var SupportedModels = []ModelKind{ModelStdDev, ModelATR, ModelHistorical, ModelBollinger, ModelSMA}

// ModelLabels are the human-readable names shown by the control surfaces.
var ModelLabels = map[ModelKind]string{
	ModelStdDev:     "Rolling Std Dev of Returns",
	ModelATR:        "Average True Range",
	ModelHistorical: "Historical Volatility (annualized)",
	ModelBollinger:  "Bollinger Band Width",
	ModelSMA:        "SMA Volatility (annualized)",
}

// ParseModelKind normalizes a user-supplied tag. Unknown tags are returned
// as-is so the estimator can reject them with UnsupportedModelError.
func ParseModelKind(s string) ModelKind {
	return ModelKind(strings.ToLower(strings.TrimSpace(s)))
}

// IsSupported reports whether k names a known estimator.
func (k ModelKind) IsSupported() bool {
	_, ok := ModelLabels[k]
	return ok
}

// Label returns the display name of the model.
func (k ModelKind) Label() string {
	if l, ok := ModelLabels[k]; ok {
		return l
	}
	return string(k)
}

// VolatilityModel is a model tag plus its numeric parameters.
// Multiplier and Percent only apply to ModelBollinger.
type VolatilityModel struct {
	Kind       ModelKind `json:"kind"`
	Window     int       `json:"window"`
	Multiplier float64   `json:"multiplier,omitempty"`
	Percent    bool      `json:"percent,omitempty"`
}

// MinWindow is the smallest rolling window any model accepts.
const MinWindow = 2

// Validate rejects unknown tags first, then out-of-range parameters.
func (m VolatilityModel) Validate() error {
	if !m.Kind.IsSupported() {
		return &UnsupportedModelError{Model: string(m.Kind)}
	}
	if m.Window < MinWindow {
		return &InvalidParameterError{Name: "window", Reason: "must be at least 2"}
	}
	if m.Kind == ModelBollinger {
		if m.Multiplier <= 0 || math.IsNaN(m.Multiplier) || math.IsInf(m.Multiplier, 0) {
			return &InvalidParameterError{Name: "multiplier", Reason: "must be a positive number"}
		}
	}
	return nil
}

// ReturnBased reports whether the model needs a prior close for each value.
func (m VolatilityModel) ReturnBased() bool {
	switch m.Kind {
	case ModelStdDev, ModelHistorical, ModelSMA:
		return true
	}
	return false
}

// DefaultThreshold is the fuzzy-match cut-off used when none is given.
const DefaultThreshold = 35

// AnalysisParams carries every user-selected parameter of one computation.
// It is passed by value into both pipelines.
type AnalysisParams struct {
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Query      string          `json:"query"`
	MaxResults int             `json:"max_results"`
	Symbol     string          `json:"symbol"`
	Threshold  int             `json:"threshold"`
	Model      VolatilityModel `json:"model"`
}

// ValidateRange rejects a start date after the end date.
func (p AnalysisParams) ValidateRange() error {
	if Day(p.Start).After(Day(p.End)) {
		return &InvalidRangeError{Start: Day(p.Start), End: Day(p.End)}
	}
	return nil
}

// ValidateThreshold rejects thresholds outside 0..100.
func (p AnalysisParams) ValidateThreshold() error {
	return ValidateThreshold(p.Threshold)
}

// ValidateThreshold rejects thresholds outside 0..100.
func ValidateThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return &InvalidParameterError{Name: "threshold", Reason: "must be between 0 and 100"}
	}
	return nil
}
