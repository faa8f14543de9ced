package tui

import (
	"encoding/json"
	"io"

	apperrors "github.com/mrz1836/create-filecoin-app/internal/errors"
)

// JSONOutput writes one JSON object per line for machine consumers.
type JSONOutput struct {
	encoder *json.Encoder
}

// NewJSONOutput creates a new JSONOutput.
func NewJSONOutput(w io.Writer) *JSONOutput {
	return &JSONOutput{encoder: json.NewEncoder(w)}
}

// jsonMessage is the format for Success/Warning/Info messages.
type jsonMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// jsonError is the format for errors.
type jsonError struct {
	Error  string `json:"error"`
	Action string `json:"action,omitempty"`
}

// Success outputs {"type":"success","message":"..."}.
func (o *JSONOutput) Success(msg string) {
	o.message("success", msg)
}

// Error outputs {"error":"...","action":"..."}.
func (o *JSONOutput) Error(err error) {
	_, action := apperrors.Actionable(err)
	//nolint:errchkjson // Method has no error return per interface contract
	_ = o.encoder.Encode(jsonError{Error: err.Error(), Action: action})
}

// Warning outputs {"type":"warning","message":"..."}.
func (o *JSONOutput) Warning(msg string) {
	o.message("warning", msg)
}

// Info outputs {"type":"info","message":"..."}.
func (o *JSONOutput) Info(msg string) {
	o.message("info", msg)
}

// JSON outputs an arbitrary value as JSON.
func (o *JSONOutput) JSON(v any) error {
	return o.encoder.Encode(v)
}

func (o *JSONOutput) message(kind, msg string) {
	//nolint:errchkjson // Method has no error return per interface contract
	_ = o.encoder.Encode(jsonMessage{Type: kind, Message: msg})
}

// Ensure JSONOutput implements Output.
var _ Output = (*JSONOutput)(nil)
