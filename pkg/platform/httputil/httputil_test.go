package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "counsel/pkg/domain-errors"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestWriteError(t *testing.T) {
	t.Run("internal error omits description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeInternal, "db failed"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeEnvelope(t, w)
		assert.Equal(t, "internal_error", body["error"])
		assert.NotContains(t, body, "error_description")
	})

	t.Run("uncoded error is treated as internal", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, decodeEnvelope(t, w), "error_description")
	})

	t.Run("forbidden includes description", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeForbidden, "application belongs to another lawyer"))

		assert.Equal(t, http.StatusForbidden, w.Code)
		body := decodeEnvelope(t, w)
		assert.Equal(t, "forbidden", body["error"])
		assert.Equal(t, "application belongs to another lawyer", body["error_description"])
	})

	t.Run("timeout maps to gateway timeout", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Wrap(errors.New("deadline"), dErrors.CodeTimeout, "ledger timed out"))

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
		assert.Equal(t, "ledger timed out", decodeEnvelope(t, w)["error_description"])
	})
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Decision string `json:"decision"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"decision":"accept"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "accept", dst.Decision)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	err := DecodeJSON(req, &dst)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", MaxBodyBytes+10)))
	_, err = ReadBody(req)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}
