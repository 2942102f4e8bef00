package report

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Messages carried in the error field
const (
	MsgNoPath        = "No image path provided"
	MsgNotFound      = "Image file not found"
	MsgDecode        = "Failed to decode image"
	MsgAnalysis      = "Image analysis failed"
	MsgInvalidConfig = "Invalid configuration"
	MsgInvalidArgs   = "Invalid arguments"
)

// ErrorResult is printed instead of a verdict when an invocation fails
type ErrorResult struct {
	Error string `json:"error"`
	Path  string `json:"path,omitempty"`
}

// Failure builds an ErrorResult; an empty path is omitted from the output
func Failure(msg, path string) ErrorResult {
	return ErrorResult{Error: msg, Path: path}
}

// Write encodes v as a single JSON line
func Write(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encode report")
	}
	return nil
}
