package validators

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/boltfit/catalog-backend/pkg/errors"
)

const maxFormMemory = 10 << 20

// ParseForm reads an urlencoded or multipart body into r.PostForm.
func ParseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxFormMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	return nil
}

// FormString returns the field value and whether the field was sent at all.
func FormString(r *http.Request, key string) (string, bool) {
	if r.PostForm == nil {
		return "", false
	}
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// FormOptionalString is FormString as a pointer; nil means not provided.
func FormOptionalString(r *http.Request, key string) *string {
	value, ok := FormString(r, key)
	if !ok {
		return nil
	}
	return &value
}

// FormFloat parses a numeric field. Absent or blank fields yield nil.
func FormFloat(r *http.Request, key string) (*float64, error) {
	raw, ok := FormString(r, key)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// FormBool parses a boolean field. Absent or blank fields yield nil.
func FormBool(r *http.Request, key string) (*bool, error) {
	raw, ok := FormString(r, key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must be a boolean").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// ParseBool accepts the usual HTML form spellings of a boolean.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "on", "yes":
		return true, nil
	case "false", "0", "off", "no":
		return false, nil
	}
	return false, strconv.ErrSyntax
}
