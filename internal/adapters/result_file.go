package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"sf-metadata-coverage/internal/ports"
	"sf-metadata-coverage/internal/types"
)

const (
	ResultFileName  = "coverage-result.json"
	SummaryFileName = "coverage-summary.yaml"
)

// ResultFileAdapter writes validation output into Dir for CI consumption.
type ResultFileAdapter struct {
	Dir string
}

func NewResultFileAdapter(dir string) ResultFileAdapter {
	return ResultFileAdapter{Dir: dir}
}

func (a ResultFileAdapter) WriteResult(result types.ValidationResult) error {
	path, err := a.ensurePath(ResultFileName)
	if err != nil {
		return err
	}
	if result.Unsupported == nil {
		result.Unsupported = []types.UnsupportedType{}
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode validation result").
			WithCause(err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

func (a ResultFileAdapter) WriteSummary(summary types.ResultSummary) error {
	path, err := a.ensurePath(SummaryFileName)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(summary)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode result summary").
			WithCause(err)
	}
	return writeFileAtomic(path, data)
}

func (a ResultFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.ResultWriterPort = ResultFileAdapter{}
