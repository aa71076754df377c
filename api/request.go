package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/normalize"
)

const maxBodySize = 32 << 20

// readBody reads the request body with its top-level keys rewritten to snake_case
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, errs.NewBadRequestError("failed to read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errs.Malformed("request body")
	}
	normalized, err := normalize.Keys(body)
	if err != nil {
		return nil, errs.NewInvalidJSONError(err)
	}
	return normalized, nil
}

// decodeBody decodes the body into dst. A body wrapped as {"<envelope>": {...}}
// is unwrapped first, so both the bare and the enveloped shape are accepted.
// Only the keys of the entity object itself are normalized.
func decodeBody(w http.ResponseWriter, r *http.Request, envelope string, dst any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}

	var wrapped map[string]json.RawMessage
	if json.Unmarshal(body, &wrapped) == nil && len(wrapped) == 1 {
		if inner, ok := wrapped[envelope]; ok && bytes.HasPrefix(bytes.TrimSpace(inner), []byte("{")) {
			if body, err = normalize.Keys(inner); err != nil {
				return errs.NewInvalidJSONError(err)
			}
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return errs.Malformed(envelope)
	}
	return nil
}

func urlID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(param)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(param, "must be a UUID")
	}
	return id, nil
}

// queryInt returns the integer query parameter name, or 0 when it is absent
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errs.NewInvalidFieldError(name, "must be a non-negative integer")
	}
	return n, nil
}

// queryBool returns the boolean query parameter name, or false when it is absent
func queryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errs.NewInvalidFieldError(name, "must be true or false")
	}
	return b, nil
}
