package models

// Severity is the interaction classifier's output tier.
type Severity string

const (
	SeverityNone    Severity = "none"
	SeverityMinor   Severity = "minor"
	SeveritySerious Severity = "serious"
)

// InteractionResult is the per-saved-drug outcome of an interaction check.
// Computed on demand; never persisted.
type InteractionResult struct {
	DrugName    string   `json:"drugName"`
	Interaction Severity `json:"interaction"`
	Details     string   `json:"details"`
}
