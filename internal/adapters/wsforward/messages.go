// Package wsforward implements the Control Session: a bidirectional
// WebSocket connection that forwards START/PAUSE/RESUME/RESTART control
// messages to a named workflow engine and relays its event bus envelopes
// back to the client verbatim, per-connection.
package wsforward

import (
	"encoding/json"
	"strings"

	"go.trai.ch/zerr"
)

// Control message type discriminators, as sent by the client.
const (
	controlStart   = "START"
	controlPause   = "PAUSE"
	controlResume  = "RESUME"
	controlRestart = "RESTART"
)

var errUnknownControlType = zerr.New("unknown control message type")

// controlMessage is the client -> server wire shape. Workflow carries
// either an inline blueprint object or that same blueprint pre-encoded as
// a JSON string, per spec's "<blueprint or its JSON string>".
type controlMessage struct {
	Type     string          `json:"type"`
	Workflow json.RawMessage `json:"workflow,omitempty"`
	FromTask string          `json:"from_task,omitempty"`
}

// blueprintBytes normalizes raw into the bytes a blueprint loader expects,
// unwrapping one layer of string-encoding if present.
func blueprintBytes(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return nil, zerr.New("START message missing workflow field")
	}
	if raw[0] != '"' {
		return raw, nil
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil, zerr.Wrap(err, "decode workflow string field")
	}
	return []byte(encoded), nil
}

// ackType lowercases a control type and appends "_ack", e.g. "START" -> "start_ack".
func ackType(controlType string) string {
	return strings.ToLower(controlType) + "_ack"
}

type ackMessage struct {
	Type string `json:"type"`
}

type startedMessage struct {
	Type     string `json:"type"`
	Workflow string `json:"workflow"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
