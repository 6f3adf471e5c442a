package cache

import "encoding/json"

// Envelope is the response shape of every read endpoint. Cached entries
// hold the marshaled envelope, so a hit replays the exact bytes produced
// when the entry was written.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK builds a successful envelope. A negative count omits the count field.
func OK(data any, count int) Envelope {
	env := Envelope{Success: true, Data: data}
	if count >= 0 {
		env.Count = &count
	}
	return env
}

// Fail builds a failure envelope carrying msg.
func Fail(msg string) Envelope {
	return Envelope{Success: false, Data: nil, Error: msg}
}

// Marshal encodes the envelope as JSON.
func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
