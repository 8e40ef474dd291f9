package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireMethod(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/design/generate", nil)
	assert.True(t, RequireMethod(w, r, "POST"))

	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "/api/design/generate", nil)
	assert.False(t, RequireMethod(w, r, "POST"))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, WriteJSON(w, http.StatusCreated, map[string]string{"id": "d1"}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"d1"}`, w.Body.String())
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, WriteError(w, http.StatusBadRequest, "bad input"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":"error","error":"bad input"}`, w.Body.String())
}

func TestWriteStageError(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, WriteStageError(w, http.StatusGatewayTimeout,
		"background_generation", "Image generation timed out", "Try again later"))

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.JSONEq(t, `{
		"status": "error",
		"error": "Image generation timed out",
		"stage": "background_generation",
		"suggestion": "Try again later"
	}`, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"acme"}`))
	require.NoError(t, DecodeJSON(r, &dst))
	assert.Equal(t, "acme", dst.Name)

	r = httptest.NewRequest("POST", "/", strings.NewReader("{broken"))
	assert.Error(t, DecodeJSON(r, &dst))
}
