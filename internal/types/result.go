package types

const (
	MessageAllSupported  = "All metadata types are supported."
	MessageSomeUnsupport = "Some metadata types are not supported."
)

// ValidationResult is the outcome of one coverage validation.
type ValidationResult struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message"`
	Unsupported []UnsupportedType `json:"unsupported"`
}

// UnsupportedType is one failing component (or expanded settings member).
// Channels holds only the required channels, mapped to the report's value,
// and is empty when the type is missing from the report.
type UnsupportedType struct {
	Type     string           `json:"type"`
	Members  []string         `json:"members"`
	Channels map[Channel]bool `json:"channels"`
}
