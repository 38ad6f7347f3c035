/*
Package req provides helpers for decoding HTTP request input.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"geopolitik/internal/pkg/errs"
)

// MaxJSONBodySize caps JSON request bodies (64 KB is far above any lobby payload).
const MaxJSONBodySize int64 = 64 << 10

// BindJSON decodes a single JSON document from the request body into dst.
// Unknown fields and trailing content are rejected.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxJSONBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}

// RequireQuery returns the named query parameter, or ErrMissingFields when it is empty.
func RequireQuery(r *http.Request, name string) (string, *errs.CustomError) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return "", errs.NewError(errs.ErrMissingFields, name)
	}
	return value, nil
}
