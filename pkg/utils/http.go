package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

func WriteJSON(w http.ResponseWriter, payload any, code int) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(payload)
}

// DataResponse is the success envelope every endpoint answers with.
// swagger:model DataResponse
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func WriteData(w http.ResponseWriter, data any, code int) error {
	return WriteJSON(w, DataResponse{Success: true, Data: data}, code)
}

// ErrDecodeBody wraps any failure to read a JSON request body.
var ErrDecodeBody = errors.New("invalid request body")

// ErrBodyTooLarge is returned when the body exceeds the configured ceiling.
var ErrBodyTooLarge = errors.New("request body too large")

func DecodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return errors.Join(ErrDecodeBody, err)
	}
	return nil
}

// WriteDecodeError answers a failed DecodeBody.
func WriteDecodeError(w http.ResponseWriter, err error) error {
	if errors.Is(err, ErrBodyTooLarge) {
		return WriteError(w, "request body too large", http.StatusRequestEntityTooLarge)
	}
	return WriteError(w, "invalid request body", http.StatusBadRequest)
}

// ValidationErrorResponse contains field-specific validation messages
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func WriteValidationError(w http.ResponseWriter, err error) error {
	res := ValidationErrorResponse{
		Message: "invalid request",
		Fields:  make(map[string]string),
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, err := range ve {
			res.Fields[fieldPath(err)] = err.Tag()
		}
	}

	return WriteJSON(w, res, http.StatusBadRequest)
}

// ErrorResponse describes a standard error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, code int) error {
	return WriteJSON(w, ErrorResponse{Message: message}, code)
}

// fieldPath drops the root struct name from the validator namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
