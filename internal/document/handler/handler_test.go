package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/padkit/helipad/internal/document/service"
	"github.com/padkit/helipad/internal/users"
	"github.com/padkit/helipad/pkg/middleware"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "me@example.com"
	testPassword = "secret"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	accounts := users.NewService(users.NewMemoryUserRepository(), users.WithCost(bcrypt.MinCost))
	_, err := accounts.Register(context.Background(), testEmail, testPassword)
	require.NoError(t, err)

	g := gin.New()
	RegisterDocumentRoutes(g, service.NewMemoryService(), middleware.AuthMiddleware(accounts))
	return g
}

func post(g *gin.Engine, path, inner string) *httptest.ResponseRecorder {
	body := "<request><authentication><email>" + testEmail + "</email><password>" + testPassword +
		"</password></authentication>" + inner + "</request>"
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/xml")
	g.ServeHTTP(w, req)
	return w
}

func TestDocumentHandler_CRUD(t *testing.T) {
	g := newTestRouter(t)

	// create
	w := post(g, "/document/create", "<document><title>Cake</title><source>*flour*</source><tags>recipe dessert</tags></document>")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<saved>true</saved>")
	require.Contains(t, w.Body.String(), `<id type="integer">1</id>`)

	// get
	w = post(g, "/document/1/get", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "<title>Cake</title>")
	require.Contains(t, body, "<source>*flour*</source>")
	require.Contains(t, body, `<share nil="true"></share>`)
	require.Contains(t, body, "<tag><name>recipe</name></tag><tag><name>dessert</name></tag>")
	require.Contains(t, body, `<approved type="boolean">false</approved>`)

	// html
	w = post(g, "/document/1/format/html", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "&lt;em&gt;flour&lt;/em&gt;")

	// update
	w = post(g, "/document/1/update", "<document><title>Pie</title></document>")
	require.Equal(t, http.StatusOK, w.Code)
	w = post(g, "/document/1/get", "")
	require.Contains(t, w.Body.String(), "<title>Pie</title>")
	require.Contains(t, w.Body.String(), "<source>*flour*</source>")

	// list and titles
	w = post(g, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `<documents type="array">`)
	w = post(g, "/documents/titles", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<title>Pie</title>")
	require.NotContains(t, w.Body.String(), "<source>")

	// destroy
	w = post(g, "/document/1/destroy", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<deleted>true</deleted>")
	w = post(g, "/document/1/get", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentHandler_SearchAndTag(t *testing.T) {
	g := newTestRouter(t)
	post(g, "/document/create", "<document><title>Wombats</title><tags>animals</tags></document>")
	post(g, "/document/create", "<document><title>Cake</title><source>wombat shaped</source><tags>recipe</tags></document>")

	w := post(g, "/document/search", "<search>WOMBAT</search>")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, strings.Count(w.Body.String(), "<document>"))

	w = post(g, "/document/tag/recipe", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, strings.Count(w.Body.String(), "<document>"))
	require.Contains(t, w.Body.String(), "<title>Cake</title>")

	post(g, "/document/create", "<document><title>Paths</title><tags>a/b</tags></document>")
	w = post(g, "/document/tag/a%2Fb", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, strings.Count(w.Body.String(), "<document>"))
	require.Contains(t, w.Body.String(), "<title>Paths</title>")

	w = post(g, "/document/tag/nothing", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, strings.Count(w.Body.String(), "<document>"))

	w = post(g, "/document/search", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDocumentHandler_Errors(t *testing.T) {
	g := newTestRouter(t)

	w := post(g, "/document/create", "<document><source>untitled</source></document>")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "<errors>")

	w = post(g, "/document/abc/get", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = post(g, "/document/99/update", "<document><title>x</title></document>")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(
		"<request><authentication><email>me@example.com</email><password>wrong</password></authentication></request>"))
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
