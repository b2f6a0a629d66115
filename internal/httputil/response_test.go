package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/ephemeral/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "not found",
			err:            apperrors.Wrap(apperrors.ErrNotFound, "keypair not found"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "not_found",
		},
		{
			name:           "corrupted",
			err:            apperrors.Wrap(apperrors.ErrCorrupted, "stored keypair is corrupted"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "corrupted_record",
		},
		{
			name:           "invalid input",
			err:            apperrors.Wrap(apperrors.ErrInvalidInput, "decryption failed"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   "invalid_input",
		},
		{
			name:           "unknown error",
			err:            errors.New("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, w).Error)
		})
	}

	t.Run("invalid input exposes message", func(t *testing.T) {
		c, w := newTestContext()

		HandleErrorGin(c, apperrors.Wrap(apperrors.ErrInvalidInput, "ciphertext must end in .box"), nil)

		assert.Contains(t, decodeError(t, w).Message, "ciphertext must end in .box")
	})

	t.Run("internal error hides message", func(t *testing.T) {
		c, w := newTestContext()

		HandleErrorGin(c, errors.New("password=hunter2"), logger)

		assert.NotContains(t, w.Body.String(), "hunter2")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()

		HandleErrorGin(c, nil, logger)

		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()

	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "bad_request", resp.Error)
	assert.Equal(t, "unexpected EOF", resp.Message)
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()

	HandleValidationErrorGin(c, errors.New("id: cannot be blank"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation_error", decodeError(t, w).Error)
}

func TestStatusFor(t *testing.T) {
	t.Run("first matching sentinel wins", func(t *testing.T) {
		err := apperrors.Wrap(apperrors.ErrNotFound, "keypair not found")

		status, resp := StatusFor(err)

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, CodeNotFound, resp.Error)
		assert.Equal(t, "The requested resource was not found", resp.Message)
	})

	t.Run("internal errors hide details", func(t *testing.T) {
		status, resp := StatusFor(errors.New("dial tcp 10.0.0.1:5432: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, CodeInternalError, resp.Error)
		assert.NotContains(t, resp.Message, "10.0.0.1")
	})
}
