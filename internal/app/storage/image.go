package storage

import (
	"encoding/base64"
	"strings"

	"github.com/mo7amedAlaa/QuikChat/internal/pkg/errs"
)

const (
	// MaxImageSizeMB is the maximum allowed decoded image size in megabytes.
	MaxImageSizeMB = 5

	// MaxImageSize is the maximum allowed decoded image size in bytes.
	MaxImageSize = MaxImageSizeMB * 1024 * 1024
)

// AllowedMIMETypes is the set of permitted image MIME types.
var AllowedMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// MIMEToExt maps allowed MIME types to the file extension used in object keys.
var MIMEToExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ParsedImage is a validated, decoded client-supplied image.
type ParsedImage struct {
	MimeType string
	Ext      string
	Data     []byte
}

// ParseImageDataURI validates and decodes a base64 data URI of the form
// "data:image/png;base64,...". The MIME type must be in the allowlist and the
// decoded payload must fit MaxImageSize.
func ParseImageDataURI(dataURI string) (*ParsedImage, *errs.CustomError) {
	const marker = ";base64,"

	if !strings.HasPrefix(dataURI, "data:") {
		return nil, errs.NewError(errs.ErrImageInvalid)
	}

	idx := strings.Index(dataURI, marker)
	if idx < 0 {
		return nil, errs.NewError(errs.ErrImageInvalid)
	}

	mimeType := strings.ToLower(dataURI[len("data:"):idx])
	if _, ok := AllowedMIMETypes[mimeType]; !ok {
		return nil, errs.NewError(errs.ErrImageInvalid)
	}

	encoded := dataURI[idx+len(marker):]

	// Cheap size check before decoding; base64 inflates by 4/3.
	if len(encoded)/4*3 > MaxImageSize {
		return nil, errs.NewError(errs.ErrImageTooLarge, MaxImageSizeMB)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errs.NewError(errs.ErrImageInvalid)
	}

	if len(data) == 0 {
		return nil, errs.NewError(errs.ErrImageInvalid)
	}

	if len(data) > MaxImageSize {
		return nil, errs.NewError(errs.ErrImageTooLarge, MaxImageSizeMB)
	}

	return &ParsedImage{
		MimeType: mimeType,
		Ext:      MIMEToExt[mimeType],
		Data:     data,
	}, nil
}
