package httputil

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/matzehuels/gridtext/pkg/errors"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 8 << 20

// ErrorBody is the JSON shape of an error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and a readable message.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// DecodeJSON decodes the request body into v. At most maxBytes are read;
// zero selects DefaultMaxBodyBytes.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		case stderrors.Is(err, io.EOF):
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		default:
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
		}
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "request body must contain a single JSON value")
	}
	return nil
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteRaw writes pre-encoded bytes with a content type.
func WriteRaw(w http.ResponseWriter, status int, contentType string, data []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, err := w.Write(data)
	return err
}

// WriteError writes err as an ErrorBody and returns the status used.
func WriteError(w http.ResponseWriter, err error) int {
	status := errors.HTTPStatus(err)
	detail := ErrorDetail{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if detail.Code == "" {
		detail = ErrorDetail{Code: errors.ErrCodeInternal, Message: http.StatusText(status)}
	}
	_ = WriteJSON(w, status, ErrorBody{Error: detail})
	return status
}
