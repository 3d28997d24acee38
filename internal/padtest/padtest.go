// Package padtest starts an in-process padserver for tests.
package padtest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/padkit/helipad/internal/document/handler"
	"github.com/padkit/helipad/internal/document/service"
	"github.com/padkit/helipad/internal/sessions"
	"github.com/padkit/helipad/internal/users"
	"github.com/padkit/helipad/pkg/middleware"
	"golang.org/x/crypto/bcrypt"
)

// Default test account.
const (
	Email    = "me@example.com"
	Password = "secret"
)

// NewServer serves the document API from memory with one registered account.
// The server is closed when the test ends.
func NewServer(t testing.TB) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accounts := users.NewService(users.NewMemoryUserRepository(), users.WithCost(bcrypt.MinCost))
	if _, err := accounts.Register(context.Background(), Email, Password); err != nil {
		t.Fatalf("padtest: register account: %v", err)
	}

	cache, err := sessions.NewService(sessions.NewMemoryRepository(), accounts, time.Minute)
	if err != nil {
		t.Fatalf("padtest: auth cache: %v", err)
	}

	r := gin.New()
	handler.RegisterDocumentRoutes(r, service.NewMemoryService(), middleware.AuthMiddleware(cache))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}
