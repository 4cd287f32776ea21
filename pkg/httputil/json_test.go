package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/gridtext/pkg/errors"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func decode(body string, limit int64) (payload, error) {
	p := payload{Count: 7}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	err := DecodeJSON(httptest.NewRecorder(), req, &p, limit)
	return p, err
}

func TestDecodeJSONKeepsDefaults(t *testing.T) {
	p, err := decode(`{"name":"grid"}`, 0)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if p.Name != "grid" || p.Count != 7 {
		t.Errorf("got %+v", p)
	}
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		limit int64
	}{
		{"empty", "", 0},
		{"unknown field", `{"nope":1}`, 0},
		{"syntax", `{"name":`, 0},
		{"trailing value", `{"name":"a"} {}`, 0},
		{"too large", `{"name":"abcdefghijklmnop"}`, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode(tt.body, tt.limit)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   errors.Code
	}{
		{errors.New(errors.ErrCodeInvalidGrid, "bad cell"), http.StatusBadRequest, errors.ErrCodeInvalidGrid},
		{fmt.Errorf("wrapped: %w", errors.New(errors.ErrCodeUnsupported, "no rsvg")), http.StatusNotImplemented, errors.ErrCodeUnsupported},
		{fmt.Errorf("secret internal detail"), http.StatusInternalServerError, errors.ErrCodeInternal},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		if got := WriteError(rec, tt.err); got != tt.wantStatus {
			t.Errorf("WriteError(%v) = %d, want %d", tt.err, got, tt.wantStatus)
		}
		var body ErrorBody
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Error.Code != tt.wantCode {
			t.Errorf("code = %s, want %s", body.Error.Code, tt.wantCode)
		}
		if strings.Contains(body.Error.Message, "secret") {
			t.Errorf("internal error text leaked: %q", body.Error.Message)
		}
	}
}
