package darkcrawl

import (
	"math"
	"strings"
)

// ConfidenceThreshold is the fixed acceptance cutoff for findings. A finding
// whose reported confidence is at or below this value is discarded entirely.
// The boundary is exclusive: 0.7 is dropped, 0.71 is kept.
const ConfidenceThreshold = 0.7

// PatternType identifies one category of deceptive UI pattern.
type PatternType string

// The closed pattern taxonomy. Model output naming any other type is kept
// verbatim but reported as unrecognized in run statistics.
const (
	PatternUrgency        PatternType = "Urgency"
	PatternScarcity       PatternType = "Scarcity & Popularity"
	PatternMisdirection   PatternType = "Misdirection"
	PatternForcedAction   PatternType = "Forced Action"
	PatternObstruction    PatternType = "Obstruction"
	PatternSneaking       PatternType = "Sneaking"
	PatternSocialProof    PatternType = "Social Proof"
	PatternConfirmshaming PatternType = "Confirmshaming"
	PatternHiddenCosts    PatternType = "Hidden Costs"
	PatternPreselection   PatternType = "Preselection"
)

// KnownPatternTypes lists the closed taxonomy in canonical order.
func KnownPatternTypes() []PatternType {
	return []PatternType{
		PatternUrgency,
		PatternScarcity,
		PatternMisdirection,
		PatternForcedAction,
		PatternObstruction,
		PatternSneaking,
		PatternSocialProof,
		PatternConfirmshaming,
		PatternHiddenCosts,
		PatternPreselection,
	}
}

// Known reports whether the type belongs to the closed taxonomy.
func (t PatternType) Known() bool {
	for _, k := range KnownPatternTypes() {
		if t == k {
			return true
		}
	}
	return false
}

// Severity expresses how harmful a finding is.
type Severity string

// Severity levels.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// BoundingBox is a validated page-pixel region: four finite, non-negative
// values with positive width and height, rounded to whole pixels.
// Downstream consumers never have to re-validate geometry.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Finding is one structured, validated claim about a deceptive UI pattern
// present on a page.
type Finding struct {
	Type         PatternType  `json:"type"`
	Description  string       `json:"description"`
	Severity     Severity     `json:"severity"`
	LocationHint string       `json:"locationHint,omitempty"`
	EvidenceText string       `json:"evidenceText,omitempty"`
	Confidence   *float64     `json:"confidence,omitempty"`
	Box          *BoundingBox `json:"boundingBox,omitempty"`
	Crop         []byte       `json:"-"` // cropped evidence image, when available
}

// RawFinding is one candidate finding exactly as the model reported it,
// before validation. Field presence is not trusted.
type RawFinding struct {
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Severity     string    `json:"severity"`
	LocationHint string    `json:"location_hint"`
	EvidenceText string    `json:"evidence"`
	Confidence   *float64  `json:"confidence"`
	Box          []float64 `json:"bbox"`
}

// FindingsResponse is the structured object the inference service must
// return: an ordered list of candidate findings plus an optional summary
// aggregate. Any response failing to parse as this shape is a failed
// attempt, not "zero findings".
type FindingsResponse struct {
	Patterns []RawFinding `json:"patterns"`
	Summary  string       `json:"summary,omitempty"`

	// Attempts records how many inference attempts it took to obtain this
	// response. Set by the client, not part of the wire contract.
	Attempts int `json:"-"`
}

// ValidateFindings enforces the output contract on candidate findings.
//
// A candidate is dropped entirely when its confidence is present and at or
// below ConfidenceThreshold. A malformed bounding box only strips the box:
// textual findings are valid research signal without a verifiable visual
// region, but a low-confidence claim of any kind is not. Surviving boxes are
// rounded to integer pixels.
//
// Returns the validated findings in input order and the number dropped.
func ValidateFindings(raw []RawFinding) ([]Finding, int) {
	var valid []Finding
	dropped := 0
	for _, r := range raw {
		if r.Confidence != nil && *r.Confidence <= ConfidenceThreshold {
			dropped++
			continue
		}
		f := Finding{
			Type:         PatternType(r.Type),
			Description:  r.Description,
			Severity:     Severity(strings.ToLower(strings.TrimSpace(r.Severity))),
			LocationHint: r.LocationHint,
			EvidenceText: r.EvidenceText,
			Confidence:   r.Confidence,
		}
		if box, ok := wellFormedBox(r.Box); ok {
			f.Box = &box
		}
		valid = append(valid, f)
	}
	return valid, dropped
}

// wellFormedBox checks the shape contract on a raw box and rounds it to
// whole pixels. A box must have exactly four finite values, non-negative
// origin, and positive extent.
func wellFormedBox(vals []float64) (BoundingBox, bool) {
	if len(vals) != 4 {
		return BoundingBox{}, false
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return BoundingBox{}, false
		}
	}
	if vals[0] < 0 || vals[1] < 0 || vals[2] <= 0 || vals[3] <= 0 {
		return BoundingBox{}, false
	}
	box := BoundingBox{
		X:      int(math.Round(vals[0])),
		Y:      int(math.Round(vals[1])),
		Width:  int(math.Round(vals[2])),
		Height: int(math.Round(vals[3])),
	}
	// Rounding can collapse a sub-pixel extent to zero.
	if box.Width <= 0 || box.Height <= 0 {
		return BoundingBox{}, false
	}
	return box, true
}
