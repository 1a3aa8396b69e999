package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()

	RespondBadGateway(w, "Slot already booked")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusBadGateway, Message: "Slot already booked"}, body)
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "x", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.Error(t, DecodeJSON(r, &v))
}
