package storage

import (
	"encoding/base64"
	"testing"

	"github.com/mo7amedAlaa/QuikChat/internal/pkg/errs"
)

func validDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func TestParseImageDataURIValid(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

	img, customErr := ParseImageDataURI(validDataURI("image/png", raw))
	if customErr != nil {
		t.Fatalf("unexpected error: %v", customErr)
	}

	if img.MimeType != "image/png" {
		t.Errorf("MimeType = %q, want image/png", img.MimeType)
	}
	if img.Ext != ".png" {
		t.Errorf("Ext = %q, want .png", img.Ext)
	}
	if string(img.Data) != string(raw) {
		t.Error("decoded data does not match input")
	}
}

func TestParseImageDataURIUppercaseMime(t *testing.T) {
	img, customErr := ParseImageDataURI(validDataURI("IMAGE/JPEG", []byte("fake-jpeg")))
	if customErr != nil {
		t.Fatalf("unexpected error: %v", customErr)
	}
	if img.Ext != ".jpg" {
		t.Errorf("Ext = %q, want .jpg", img.Ext)
	}
}

func TestParseImageDataURIRejectsUnsupportedMime(t *testing.T) {
	_, customErr := ParseImageDataURI(validDataURI("image/svg+xml", []byte("<svg/>")))
	if customErr == nil {
		t.Fatal("expected error for disallowed MIME type")
	}
	if customErr.Code != errs.ErrImageInvalid {
		t.Errorf("error code = %d, want %d", customErr.Code, errs.ErrImageInvalid)
	}
}

func TestParseImageDataURIRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		uri  string
	}{
		{"no data prefix", "image/png;base64,aGVsbG8="},
		{"missing base64 marker", "data:image/png,aGVsbG8="},
		{"bad base64 payload", "data:image/png;base64,!!!not-base64!!!"},
		{"empty payload", "data:image/png;base64,"},
		{"plain url", "https://example.com/cat.png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, customErr := ParseImageDataURI(tc.uri); customErr == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseImageDataURIRejectsOversized(t *testing.T) {
	big := make([]byte, MaxImageSize+1)

	_, customErr := ParseImageDataURI(validDataURI("image/png", big))
	if customErr == nil {
		t.Fatal("expected error for oversized image")
	}
	if customErr.Code != errs.ErrImageTooLarge {
		t.Errorf("error code = %d, want %d", customErr.Code, errs.ErrImageTooLarge)
	}
}
