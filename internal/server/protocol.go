package server

import "encoding/json"

// Message is a client event.
type Message struct {
	// ID is the target element's data-eid.
	ID   string `json:"id"`
	Type string `json:"type"`

	// Value, Checked and the selection mirror the browser element's state
	// when the event fired. Absent fields leave the element unchanged.
	Value    *string `json:"value,omitempty"`
	Checked  *bool   `json:"checked,omitempty"`
	SelStart *int    `json:"selStart,omitempty"`
	SelEnd   *int    `json:"selEnd,omitempty"`
}

// Reply is sent after each message.
type Reply struct {
	// HTML is the re-rendered <main>, with element ids.
	HTML string `json:"html,omitempty"`

	// Error is a JSON-formatted coded error.
	Error json.RawMessage `json:"error,omitempty"`
}
