package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	token, expires, err := issuer.Issue("host-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "host-1", claims.HostID)
	assert.Equal(t, "host-1", claims.Subject)
}

func TestIssuer_RejectsForeignAndExpiredTokens(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	other, _, err := NewIssuer("another", time.Hour).Issue("host-1")
	require.NoError(t, err)
	_, err = issuer.Parse(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue("host-1")
	require.NoError(t, err)
	_, err = issuer.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasscodeHash(t *testing.T) {
	hash, err := HashPasscode("1010")
	require.NoError(t, err)

	assert.NotEqual(t, "1010", hash)
	assert.True(t, CheckPasscode(hash, "1010"))
	assert.False(t, CheckPasscode(hash, "0101"))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := NewIssuer("secret", time.Hour)
	token, _, err := issuer.Issue("host-1")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/me", Middleware(issuer), func(c *gin.Context) {
		c.String(http.StatusOK, HostID(c))
	})

	testCases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{name: "valid", header: "Bearer " + token, status: http.StatusOK, body: "host-1"},
		{name: "missing", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", status: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}
