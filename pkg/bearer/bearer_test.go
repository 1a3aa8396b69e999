package bearer

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHeader(t *testing.T) {
	assert.Equal(t, "abc", FromHeader("Bearer abc"))
	assert.Equal(t, "abc", FromHeader("bearer abc"))
	assert.Equal(t, "", FromHeader("Basic abc"))
	assert.Equal(t, "", FromHeader(""))
}

func TestSetAuthorization(t *testing.T) {
	ctx := ContextWithToken(context.Background(), "tok")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	SetAuthorization(req)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
}

func TestSetAuthorization_NoToken(t *testing.T) {
	req, err := http.NewRequestWithContext(ContextWithToken(context.Background(), ""), http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)

	SetAuthorization(req)
	assert.Empty(t, req.Header.Get("Authorization"))
}
