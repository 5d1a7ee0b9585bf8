package api

import (
	"errors"
	"fmt"
)

// StatusOK is the status value of a successful reply. Every other value,
// including the server's "failed", is a failure.
const StatusOK = "ok"

// Response is a decoded service reply.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`

	raw []byte
}

// Failure is an application-level error reported by the service.
type Failure struct {
	Status string
	Reason string
}

func parseResponse(raw []byte) (*Response, error) {
	var r Response
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if r.Status == "" {
		return nil, errors.New("decoding response: missing status field")
	}
	r.raw = raw
	return &r, nil
}

// OK reports whether the service accepted the operation.
func (r *Response) OK() bool { return r.Status == StatusOK }

// Failure returns the service's verdict as a Failure. Only meaningful when
// OK is false.
func (r *Response) Failure() *Failure {
	return &Failure{Status: r.Status, Reason: r.Error}
}

// Payload classifies the reply and decodes the success payload into p. It
// returns nil on success. A non-ok status, or an ok status whose payload does
// not match p, yields a Failure; it never panics.
func (r *Response) Payload(p Checker) *Failure {
	if !r.OK() {
		return r.Failure()
	}
	if err := json.Unmarshal(r.raw, p); err != nil {
		return &Failure{Status: r.Status, Reason: "unexpected response payload: " + err.Error()}
	}
	if err := p.Check(); err != nil {
		return &Failure{Status: r.Status, Reason: "unexpected response payload: " + err.Error()}
	}
	return nil
}
