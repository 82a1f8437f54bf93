/*
Package req provides helpers for parsing and binding HTTP request bodies.
*/
package req

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mo7amedAlaa/QuikChat/internal/pkg/errs"
)

// MaxBodyBytes limits the request body size. Image messages arrive as
// base64 data URIs inside the JSON body, so the limit is generous (10 MB).
const MaxBodyBytes int64 = 10 << 20

// BindJSON decodes the request body into dst. Unknown fields and trailing
// content are rejected, and the body is capped at MaxBodyBytes.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewError(errs.ErrImageTooLarge, MaxBodyBytes>>20)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
