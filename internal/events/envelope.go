package events

import (
	"encoding/json"
)

// Envelope is the wire frame for both directions of the websocket.
// Client frames name the event they invoke; server frames name the
// event they deliver.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode marshals an outbound frame. The payload must be
// json-serializable; callers treat a failure as a delivery problem,
// not a domain error.
func Encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}

// Decode parses an inbound client frame.
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, err
	}
	return env, nil
}
