package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code1379/bookmark/internal/api/controller"
	"github.com/code1379/bookmark/internal/api/repository"
	"github.com/code1379/bookmark/internal/api/service"
	"github.com/code1379/bookmark/internal/auth"
	"github.com/code1379/bookmark/internal/middleware"
	"github.com/code1379/bookmark/internal/server"
	"github.com/code1379/bookmark/internal/store"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.NewSQLiteStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	sessions := auth.NewSessionManager("controller-test-secret", auth.SessionTTL)
	userRepo := repository.NewUserRepository(s)
	bookmarkRepo := repository.NewBookmarkRepository(s)
	categoryRepo := repository.NewCategoryRepository(s)

	srv := server.New(
		controller.NewAuthController(service.NewUserService(userRepo, sessions), false),
		controller.NewBookmarkController(service.NewBookmarkService(bookmarkRepo)),
		controller.NewCategoryController(service.NewCategoryService(categoryRepo)),
		middleware.SessionAuth(sessions, userRepo),
	)
	return srv.Engine()
}

func doJSON(engine *gin.Engine, method, path, body, cookie string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

func TestRegisterAndLogin(t *testing.T) {
	engine := newTestServer(t)

	registerBody := `{"username":"frank","email":"Frank@Example.com","password":"Password#1234","confirmPassword":"Password#1234"}`
	rec := doJSON(engine, http.MethodPost, "/api/auth/register", registerBody, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"email":"frank@example.com"`)
	assert.NotContains(t, rec.Body.String(), "password")

	// The same email, regardless of case, conflicts.
	rec = doJSON(engine, http.MethodPost, "/api/auth/register", registerBody, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(engine, http.MethodPost, "/api/auth/register",
		`{"username":"x","email":"bad","password":"short","confirmPassword":"other"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(engine, http.MethodPost, "/api/auth/login",
		`{"email":"frank@example.com","password":"wrong-password"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(engine, http.MethodPost, "/api/auth/login",
		`{"email":"FRANK@example.com","password":"Password#1234"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, auth.CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int(auth.SessionTTL.Seconds()), cookie.MaxAge)
}

func TestLogoutClearsCookie(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(engine, http.MethodPost, "/api/auth/logout", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.CookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
	assert.Empty(t, cookies[0].Value)
}

func TestBookmarkRoutesRequireSession(t *testing.T) {
	engine := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/bookmarks"},
		{http.MethodPost, "/api/bookmarks"},
		{http.MethodPatch, "/api/bookmarks/1"},
		{http.MethodDelete, "/api/bookmarks/1"},
		{http.MethodGet, "/api/categories"},
		{http.MethodPost, "/api/categories"},
	} {
		rec := doJSON(engine, route.method, route.path, "{}", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.method+" "+route.path)
	}
}

func TestBookmarkFlow(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(engine, http.MethodPost, "/api/auth/login",
		`{"email":"demo@example.local","password":"Demo@123456"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := sessionCookie(t, rec)

	rec = doJSON(engine, http.MethodPost, "/api/bookmarks",
		`{"url":"https://www.go.dev/blog","tags":["go"],"category":"Reading"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"title":"go.dev"`)
	assert.Contains(t, rec.Body.String(), `"category":"Reading"`)

	rec = doJSON(engine, http.MethodPost, "/api/bookmarks", `{"url":"not a url"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(engine, http.MethodGet, "/api/bookmarks?limit=2", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResponse struct {
		Extras struct {
			Data []struct {
				Title string `json:"title"`
			} `json:"data"`
		} `json:"extras"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResponse))
	require.Len(t, listResponse.Extras.Data, 2)
	assert.Equal(t, "go.dev", listResponse.Extras.Data[0].Title)

	// An update with no recognized fields is rejected.
	rec = doJSON(engine, http.MethodPatch, "/api/bookmarks/1", `{}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(engine, http.MethodPatch, "/api/bookmarks/1", `{"title":"Figma Board"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"title":"Figma Board"`)

	rec = doJSON(engine, http.MethodPatch, "/api/bookmarks/999", `{"title":"Nope"}`, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(engine, http.MethodDelete, "/api/bookmarks/3", "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(engine, http.MethodDelete, "/api/bookmarks/3", "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(engine, http.MethodDelete, "/api/bookmarks/abc", "", cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryFlow(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(engine, http.MethodPost, "/api/auth/login",
		`{"email":"demo@example.local","password":"Demo@123456"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)

	rec = doJSON(engine, http.MethodGet, "/api/categories", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bookmarkCount":2`)

	rec = doJSON(engine, http.MethodPost, "/api/categories", `{"name":"Work"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(engine, http.MethodPost, "/api/categories", `{"name":"work"}`, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(engine, http.MethodPost, "/api/categories", `{"name":"   "}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(engine, http.MethodPatch, "/api/categories/2", `{"name":"Engineering"}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Engineering"`)

	// Design Resources still holds bookmarks, so it cannot be removed.
	rec = doJSON(engine, http.MethodDelete, "/api/categories/1", "", cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(engine, http.MethodDelete, "/api/categories/2", "", cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(engine, http.MethodDelete, "/api/categories/2", "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(engine, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSessionSurvivesRestartWithSameSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	first := auth.NewSessionManager("shared-secret", time.Hour)
	second := auth.NewSessionManager("shared-secret", time.Hour)

	token := first.Issue(1)
	session, err := second.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), session.UserID)
}
