package response

import (
	"encoding/json"
	"net/http"
)

// Messages used by the failure envelopes.
const (
	MessageNotFound        = "Not found"
	MessageNotImplemented  = "Not Implemented"
	MessageUnauthorized    = "Unauthorized"
	MessageValidationError = "Validation error"
	MessageServerError     = "Server Error"
)

// ValidationErrors is the error bag of a failed validation: field -> messages.
type ValidationErrors map[string][]string

// Pagination is a paginator converted to a plain object without its data.
type Pagination map[string]interface{}

// Envelope is the body of every response.
type Envelope struct {
	Success    bool             `json:"success"`
	Message    *string          `json:"message"`
	Code       int              `json:"code"`
	Data       *Payload         `json:"data,omitempty"`
	Pagination Pagination       `json:"pagination,omitempty"`
	Errors     ValidationErrors `json:"errors,omitempty"`
}

// Payload holds normalized data. A nil *Payload omits the data key, a
// Payload holding nil renders "data": null.
type Payload struct {
	value interface{}
}

// MarshalJSON renders the wrapped value.
func (p Payload) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.value)
}

// Value returns the normalized value.
func (p *Payload) Value() interface{} {
	if p == nil {
		return nil
	}
	return p.value
}

// Success builds a successful envelope for code carrying the normalized value.
func Success(code int, v interface{}) (*Envelope, error) {
	data, err := Data(v)
	if err != nil {
		return nil, err
	}
	return &Envelope{Success: true, Code: code, Data: &Payload{value: data}}, nil
}

// Failure builds an unsuccessful envelope without data.
func Failure(code int, message string) *Envelope {
	return &Envelope{Success: false, Message: &message, Code: code}
}

// Page builds a 200 envelope for a paginator: data holds the page items and
// pagination the remaining paginator fields.
func Page(v interface{}) (*Envelope, error) {
	env, err := Success(http.StatusOK, v)
	if err != nil {
		return nil, err
	}
	pagination, err := ExtractPagination(v)
	if err != nil {
		return nil, err
	}
	env.Pagination = pagination
	return env, nil
}
