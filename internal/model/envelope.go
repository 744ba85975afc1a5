package model

import (
	"encoding/json"
	"fmt"
)

// Status is the outcome reported by every backend response
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// MessageInvalidPlatform is returned by openSession for an unregistered platform
const MessageInvalidPlatform = "Invalid platform ID"

// Result is one entry of an envelope's data array.
// Kept as a map so fields the suite does not know about survive a round trip.
type Result map[string]any

// Response is the JSON envelope the backend wraps every answer in
type Response struct {
	Status  Status   `json:"status"`
	Data    []Result `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
}

// OK reports whether the backend accepted the request
func (r *Response) OK() bool {
	return r.Status == StatusOK
}

// First returns data[0], or nil when the envelope carries no data
func (r *Response) First() Result {
	if len(r.Data) == 0 {
		return nil
	}
	return r.Data[0]
}

// Has reports whether data[0] carries a non-null field
func (r *Response) Has(field string) bool {
	first := r.First()
	if first == nil {
		return false
	}
	v, ok := first[field]
	return ok && v != nil
}

// Value returns the raw data[0] field, preserving its JSON type
func (r *Response) Value(field string) any {
	first := r.First()
	if first == nil {
		return nil
	}
	return first[field]
}

// String returns data[0][field] rendered as text. Numeric ids decoded as
// json.Number keep their exact digits.
func (r *Response) String(field string) string {
	switch v := r.Value(field).(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Pretty renders the envelope as indented JSON for failure diagnostics
func (r *Response) Pretty() string {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Sprintf("%+v", *r)
	}
	return string(data)
}

// OKResponse builds a success envelope around a single result
func OKResponse(result Result) Response {
	if result == nil {
		return Response{Status: StatusOK}
	}
	return Response{Status: StatusOK, Data: []Result{result}}
}

// ErrorResponse builds an error envelope
func ErrorResponse(message string) Response {
	return Response{Status: StatusError, Message: message}
}
