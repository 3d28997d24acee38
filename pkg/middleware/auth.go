package middleware

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/padkit/helipad/internal/document"
	"github.com/padkit/helipad/internal/models"
)

// Context keys set by AuthMiddleware.
const (
	AccountKey  = "account"
	EnvelopeKey = "envelope"
)

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// ErrorsBody is the XML error document returned on failures.
type ErrorsBody struct {
	XMLName xml.Name `xml:"errors"`
	Errors  []string `xml:"error"`
}

// AbortWithXMLError stops the chain with an <errors> body.
func AbortWithXMLError(c *gin.Context, status int, msg string) {
	c.Abort()
	c.XML(status, ErrorsBody{Errors: []string{msg}})
}

// AuthMiddleware decodes the <request> envelope and checks its
// <authentication> block against ver. The envelope and the account email are
// stored on the context for later handlers.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			AbortWithXMLError(c, http.StatusBadRequest, "unreadable request body")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		env, err := document.ParseEnvelope(body)
		if err != nil {
			AbortWithXMLError(c, http.StatusBadRequest, "malformed request")
			return
		}
		auth := env.Authentication
		if auth.Email == "" || auth.Password == "" {
			AbortWithXMLError(c, http.StatusUnauthorized, "missing credentials")
			return
		}

		user, err := ver.Authenticate(c.Request.Context(), auth.Email, auth.Password)
		if err != nil || user == nil {
			AbortWithXMLError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}

		c.Set(AccountKey, user.Email)
		c.Set(EnvelopeKey, env)
		c.Next()
	}
}

// Account returns the authenticated email, or "" before AuthMiddleware ran.
func Account(c *gin.Context) string {
	return c.GetString(AccountKey)
}

// Envelope returns the decoded request, or nil before AuthMiddleware ran.
func Envelope(c *gin.Context) *document.Envelope {
	if v, ok := c.Get(EnvelopeKey); ok {
		if env, ok := v.(*document.Envelope); ok {
			return env
		}
	}
	return nil
}
