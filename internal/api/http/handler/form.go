package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxUploadMemory bounds in-memory multipart parsing; larger parts spill to
// temporary files.
const maxUploadMemory = 10 << 20

// urlParamUUID parses a UUID path parameter.
func urlParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// formParam reads a request parameter from the query string or form body.
// ParseForm only reads the body for POST, PUT and PATCH, so DELETE requests
// carrying a url-encoded body get an explicit fallback.
func formParam(r *http.Request, name string) string {
	if value := r.FormValue(name); value != "" {
		return value
	}
	if r.Method != http.MethodDelete || r.Body == nil {
		return ""
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadMemory))
	if err != nil {
		return ""
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return ""
	}
	return values.Get(name)
}

// formValuePtr returns a pointer to a form value, or nil when the field is
// absent or empty. Partial updates treat empty as not supplied.
func formValuePtr(r *http.Request, name string) *string {
	value := r.FormValue(name)
	if value == "" {
		return nil
	}
	return &value
}

// formFileBytes reads an uploaded file part. Returns nil without error when
// the part is absent.
func formFileBytes(r *http.Request, name string) ([]byte, error) {
	file, _, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file part %s: %w", name, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file part %s: %w", name, err)
	}
	return data, nil
}
