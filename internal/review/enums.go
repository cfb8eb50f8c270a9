package review

// Dimension names one of the five scoring axes.
type Dimension string

const (
	DimensionCompleteness       Dimension = "completeness"
	DimensionMetricsDensity     Dimension = "metrics_density"
	DimensionNarrativeCoherence Dimension = "narrative_coherence"
	DimensionThesisAlignment    Dimension = "thesis_alignment"
	DimensionCommonMistakes     Dimension = "common_mistakes"
)

// Dimensions returns all dimensions in result order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionCompleteness,
		DimensionMetricsDensity,
		DimensionNarrativeCoherence,
		DimensionThesisAlignment,
		DimensionCommonMistakes,
	}
}

// QualitativeDimensions returns the dimensions judged by the external scorer.
func QualitativeDimensions() []Dimension {
	return []Dimension{
		DimensionNarrativeCoherence,
		DimensionThesisAlignment,
		DimensionCommonMistakes,
	}
}

func (d Dimension) Valid() bool {
	switch d {
	case DimensionCompleteness, DimensionMetricsDensity, DimensionNarrativeCoherence,
		DimensionThesisAlignment, DimensionCommonMistakes:
		return true
	}
	return false
}

// NominalWeight is the weight a dimension carries when every dimension is scored.
func (d Dimension) NominalWeight() float64 {
	switch d {
	case DimensionCompleteness:
		return 0.25
	case DimensionMetricsDensity, DimensionNarrativeCoherence, DimensionThesisAlignment:
		return 0.20
	case DimensionCommonMistakes:
		return 0.15
	}
	return 0
}

// Qualitative reports whether the dimension comes from the external scorer.
func (d Dimension) Qualitative() bool {
	switch d {
	case DimensionNarrativeCoherence, DimensionThesisAlignment, DimensionCommonMistakes:
		return true
	}
	return false
}

// Title is the human label, e.g. "Metrics Density".
func (d Dimension) Title() string {
	switch d {
	case DimensionCompleteness:
		return "Completeness"
	case DimensionMetricsDensity:
		return "Metrics Density"
	case DimensionNarrativeCoherence:
		return "Narrative Coherence"
	case DimensionThesisAlignment:
		return "Thesis Alignment"
	case DimensionCommonMistakes:
		return "Common Mistakes"
	}
	return string(d)
}

// Mode records whether a result includes qualitative scoring.
type Mode string

const (
	ModeFull      Mode = "full"
	ModeRulesOnly Mode = "rules_only"
)

func (m Mode) Valid() bool {
	return m == ModeFull || m == ModeRulesOnly
}
