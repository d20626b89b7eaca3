package ports

import "sf-metadata-coverage/internal/types"

// ResultWriterPort writes validation results for CI consumption.
type ResultWriterPort interface {
	WriteResult(result types.ValidationResult) error
	WriteSummary(summary types.ResultSummary) error
}
