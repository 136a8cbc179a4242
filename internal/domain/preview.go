package domain

// Complexity is a coarse size classification of a rule.
type Complexity string

const (
	ComplexityNone    Complexity = "None"
	ComplexitySimple  Complexity = "Simple"
	ComplexityMedium  Complexity = "Medium"
	ComplexityComplex Complexity = "Complex"
)

// FlowStep is one stage of the execution-flow breakdown.
type FlowStep struct {
	Step  string   `json:"step"`
	Items []string `json:"items"`
}

// Counts holds the number of blocks per category.
type Counts struct {
	Triggers   int `json:"triggers"`
	Conditions int `json:"conditions"`
	Actions    int `json:"actions"`
}

// Preview is everything derived from the blocks on the canvas.
// Returned to callers to render the rule summary.
type Preview struct {
	Description string     `json:"description"`
	Complexity  Complexity `json:"complexity"`
	Flow        []FlowStep `json:"flow"`
	Counts      Counts     `json:"counts"`
	Total       int        `json:"total"`
}
