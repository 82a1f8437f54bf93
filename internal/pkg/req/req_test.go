package req

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mo7amedAlaa/QuikChat/internal/pkg/errs"
)

type testInput struct {
	Text string `json:"text"`
}

func TestBindJSONValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"hello"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	var input testInput
	if customErr := BindJSON(w, r, &input); customErr != nil {
		t.Fatalf("unexpected error: %v", customErr)
	}
	if input.Text != "hello" {
		t.Errorf("Text = %q, want hello", input.Text)
	}
}

func TestBindJSONContentTypeWithCharset(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"hello"}`))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	w := httptest.NewRecorder()

	var input testInput
	if customErr := BindJSON(w, r, &input); customErr != nil {
		t.Fatalf("unexpected error: %v", customErr)
	}
}

func TestBindJSONWrongContentType(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"hello"}`))
	r.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()

	var input testInput
	customErr := BindJSON(w, r, &input)
	if customErr == nil || customErr.Code != errs.ErrUnsupportedMediaType {
		t.Errorf("error = %v, want code %d", customErr, errs.ErrUnsupportedMediaType)
	}
}

func TestBindJSONMalformedBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	var input testInput
	customErr := BindJSON(w, r, &input)
	if customErr == nil || customErr.Code != errs.ErrInvalidJSONFormat {
		t.Errorf("error = %v, want code %d", customErr, errs.ErrInvalidJSONFormat)
	}
}

func TestBindJSONUnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"hi","extra":1}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	var input testInput
	customErr := BindJSON(w, r, &input)
	if customErr == nil || customErr.Code != errs.ErrInvalidJSONFormat {
		t.Errorf("error = %v, want code %d", customErr, errs.ErrInvalidJSONFormat)
	}
}

func TestBindJSONTrailingContent(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"hi"}{"text":"again"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	var input testInput
	customErr := BindJSON(w, r, &input)
	if customErr == nil || customErr.Code != errs.ErrExtraContentInBody {
		t.Errorf("error = %v, want code %d", customErr, errs.ErrExtraContentInBody)
	}
}
