package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/GooferByte/OfsaaValidator/internal/session"
	"github.com/GooferByte/OfsaaValidator/internal/validator"
)

func init() {
	Register(NewJSONRenderer())
}

// JSONEnvelope is the machine-readable validation result.
type JSONEnvelope struct {
	Summary   session.Summary `json:"summary"`
	File      string          `json:"file,omitempty"`
	Encoding  string          `json:"encoding,omitempty"`
	Generated string          `json:"generated_at"`
	Errors    []JSONError     `json:"errors"`
}

// JSONError is the wire form of one validation error.
type JSONError struct {
	Row      int    `json:"row"`
	Column   string `json:"column"`
	Type     string `json:"error_type"`
	Message  string `json:"message"`
	Actual   string `json:"actual_value"`
	Expected string `json:"expected_value"`
	Fix      string `json:"fix_recommendation"`
}

// JSONRenderer writes the result as a JSON document for automation.
type JSONRenderer struct {
	// nowFunc overrides the current time in tests.
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Renderer = (*JSONRenderer)(nil)

// NewJSONRenderer returns a new JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Name returns the format name.
func (j *JSONRenderer) Name() string {
	return "json"
}

// Render writes the envelope, pretty-printed, to w.
func (j *JSONRenderer) Render(in Input, w io.Writer) error {
	now := time.Now()
	if j.nowFunc != nil {
		now = j.nowFunc()
	}

	envelope := JSONEnvelope{
		Summary:   in.Result.Summary,
		File:      in.Metadata.Path,
		Encoding:  in.Metadata.Encoding,
		Generated: now.UTC().Format(time.RFC3339),
		Errors:    make([]JSONError, 0, len(in.Result.Errors)),
	}
	for _, e := range in.Result.Errors {
		envelope.Errors = append(envelope.Errors, jsonError(e))
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

func jsonError(e validator.Error) JSONError {
	return JSONError{
		Row:      e.Row,
		Column:   e.Column,
		Type:     string(e.Type),
		Message:  e.Message,
		Actual:   e.Actual,
		Expected: e.Expected,
		Fix:      e.Fix,
	}
}
