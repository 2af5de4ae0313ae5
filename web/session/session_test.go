package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSessionEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	engine.Use(sessions.Sessions("goblog", store))
	return engine
}

func doWithCookies(engine *gin.Engine, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestLoginUserLifecycle(t *testing.T) {
	engine := newSessionEngine()
	engine.GET("/set", func(c *gin.Context) {
		assert.NoError(t, SetLoginUser(c, LoginUser{Id: 7, Username: "ada"}))
		c.Status(http.StatusOK)
	})
	engine.GET("/get", func(c *gin.Context) {
		user := GetLoginUser(c)
		if assert.NotNil(t, user) {
			assert.Equal(t, 7, user.Id)
			assert.Equal(t, "ada", user.Username)
		}
		assert.True(t, IsLogin(c))
		c.Status(http.StatusOK)
	})
	engine.GET("/clear", func(c *gin.Context) {
		assert.NoError(t, ClearLoginUser(c))
		c.Status(http.StatusOK)
	})
	engine.GET("/anon", func(c *gin.Context) {
		assert.Nil(t, GetLoginUser(c))
		assert.False(t, IsLogin(c))
		c.Status(http.StatusOK)
	})

	w := doWithCookies(engine, http.MethodGet, "/set", nil)
	cookies := w.Result().Cookies()

	doWithCookies(engine, http.MethodGet, "/get", cookies)

	w = doWithCookies(engine, http.MethodGet, "/clear", cookies)
	cookies = w.Result().Cookies()

	doWithCookies(engine, http.MethodGet, "/anon", cookies)
}

func TestFlashesAreOneShot(t *testing.T) {
	engine := newSessionEngine()
	engine.GET("/flash", func(c *gin.Context) {
		assert.NoError(t, AddFlash(c, "warning", "Please log in first."))
		assert.NoError(t, AddFlash(c, "info", "second"))
		c.Status(http.StatusOK)
	})
	engine.GET("/take", func(c *gin.Context) {
		flashes := TakeFlashes(c)
		if assert.Len(t, flashes, 2) {
			assert.Equal(t, "warning", flashes[0].Severity)
			assert.Equal(t, "Please log in first.", flashes[0].Message)
			assert.Equal(t, "info", flashes[1].Severity)
		}
		c.Status(http.StatusOK)
	})
	engine.GET("/empty", func(c *gin.Context) {
		assert.Nil(t, TakeFlashes(c))
		c.Status(http.StatusOK)
	})

	w := doWithCookies(engine, http.MethodGet, "/flash", nil)
	cookies := w.Result().Cookies()

	w = doWithCookies(engine, http.MethodGet, "/take", cookies)
	cookies = w.Result().Cookies()

	// taking flashes consumes them
	doWithCookies(engine, http.MethodGet, "/empty", cookies)
}
