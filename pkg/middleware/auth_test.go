package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/padkit/helipad/internal/models"
	"github.com/stretchr/testify/require"
)

// fakeVerifier implements Verifier
type fakeVerifier struct{}

func (f *fakeVerifier) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "me@example.com" && password == "secret" {
		return &models.User{Email: email}, nil
	}
	return nil, fmt.Errorf("invalid credentials")
}

func envelope(email, password, inner string) string {
	return "<request><authentication><email>" + email + "</email><password>" + password +
		"</password></authentication>" + inner + "</request>"
}

func newAuthRouter() *gin.Engine {
	g := gin.New()
	g.POST("/", AuthMiddleware(&fakeVerifier{}), func(c *gin.Context) {
		env := Envelope(c)
		search := ""
		if env != nil && env.Search != nil {
			search = *env.Search
		}
		c.String(http.StatusOK, Account(c)+"|"+search)
	})
	return g
}

func TestAuthMiddleware_MalformedBody(t *testing.T) {
	g := newAuthRouter()
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("<request>")))

	require.Equal(t, http.StatusBadRequest, rw.Code)
	require.Contains(t, rw.Body.String(), "<errors>")
}

func TestAuthMiddleware_MissingCredentials(t *testing.T) {
	g := newAuthRouter()
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("<request></request>")))

	require.Equal(t, http.StatusUnauthorized, rw.Code)
}

func TestAuthMiddleware_InvalidCredentials(t *testing.T) {
	g := newAuthRouter()
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(envelope("me@example.com", "nope", ""))))

	require.Equal(t, http.StatusUnauthorized, rw.Code)
	require.Contains(t, rw.Body.String(), "invalid credentials")
}

func TestAuthMiddleware_ValidCredentials(t *testing.T) {
	g := newAuthRouter()
	rw := httptest.NewRecorder()
	body := envelope("me@example.com", "secret", "<search>cake</search>")
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rw.Code)
	require.Equal(t, "me@example.com|cake", rw.Body.String())
}
