package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("vlog"), http.StatusNotFound},
		{"already exists", NewAlreadyExists("carousel"), http.StatusConflict},
		{"missing field", NewMissingRequiredFieldError("title"), http.StatusBadRequest},
		{"invalid field", NewInvalidFieldError("part", "must be 1 or 2"), http.StatusBadRequest},
		{"invalid url", NewInvalidURLError("YouTube", "youtube_url", "x"), http.StatusBadRequest},
		{"invalid json", NewInvalidJSONError(errors.New("eof")), http.StatusBadRequest},
		{"malformed", Malformed("vlog"), http.StatusBadRequest},
		{"cors", NewCORSError("https://evil.example.com"), http.StatusForbidden},
		{"wrapped", fmt.Errorf("service: %w", NewNotFound("recipe")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestSentinels(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("vlog")))
	assert.True(t, IsAlreadyExists(NewAlreadyExists("carousel")))
	assert.True(t, IsMissingRequiredFieldError(NewMissingRequiredFieldError("title")))
	assert.True(t, IsInvalidFieldError(NewInvalidFieldError("x", "y")))
	assert.True(t, IsInvalidURLError(NewInvalidURLError("Spotify", "spotify_url", "x")))
	assert.True(t, IsInvalidJSONError(NewInvalidJSONError(nil)))
	assert.True(t, IsMalformedPayloadError(Malformed("album")))
	assert.True(t, IsBadRequest(NewBadRequestError("failed to read request body")))
	assert.True(t, IsConflict(NewConflictError("busy")))
	assert.True(t, IsInternal(NewInternalError("oops")))
	assert.False(t, IsNotFound(NewAlreadyExists("carousel")))
}

func TestApiErr_Messages(t *testing.T) {
	err := NewInvalidURLError("YouTube", "youtube_url", "not-a-url")
	assert.Equal(t, `invalid YouTube URL: invalid URL: could not parse "not-a-url"`, err.Error())
	assert.Equal(t, "youtube_url", err.Field)

	inner := NewNotFound("carousel")
	outer := NewTransactionFailedError("reorder", inner)
	assert.Equal(t, "transaction failed: Transaction failed during reorder -> carousel not found", outer.GetFullError())

	plain := NewInternalErrorWithCause("export failed", errors.New("disk full"))
	assert.Equal(t, "export failed: internal server error -> disk full", plain.GetFullError())
}

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
		check  func(error) bool
	}{
		{"postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "idx_carousel_page_slug"`), http.StatusConflict, IsAlreadyExists},
		{"sqlite duplicate", errors.New("constraint failed: UNIQUE constraint failed: carousels.page, carousels.slug"), http.StatusConflict, IsAlreadyExists},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, http.StatusConflict, IsAlreadyExists},
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, IsNotFound},
		{"foreign key", errors.New("FOREIGN KEY constraint failed"), http.StatusBadRequest, IsBadRequest},
		{"connection", errors.New("failed to connect: connection refused"), http.StatusServiceUnavailable, func(err error) bool { return errors.Is(err, ErrDatabaseConnection) }},
		{"other", errors.New("syntax error"), http.StatusInternalServerError, IsDatabaseQueryError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "carousel", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.True(t, tt.check(err))
			assert.Equal(t, tt.cause, err.Cause)
		})
	}

	t.Run("api errors pass through", func(t *testing.T) {
		notFound := NewNotFound("vlog")
		assert.Same(t, notFound, NewDatabaseError("get", "vlog", notFound))
	})
}
