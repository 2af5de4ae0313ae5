package controller

import (
	"net/http"

	"goblog/logger"
	"goblog/web/service"
	"goblog/web/session"

	"github.com/gin-gonic/gin"
)

// SignupForm is the registration form submission.
type SignupForm struct {
	FirstName string `form:"fname"`
	LastName  string `form:"lname"`
	Username  string `form:"uname"`
	Email     string `form:"email"`
	Password  string `form:"password"`
}

// LoginForm is the login form submission.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// IndexController handles the public feed and the authentication flows.
type IndexController struct {
	BaseController

	userService service.UserService
	blogService service.BlogService
}

// NewIndexController creates an IndexController and registers its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/signup", a.signupPage)
	g.POST("/signup", a.signup)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

// index renders the public feed: all posts, newest first, no pagination.
func (a *IndexController) index(c *gin.Context) {
	posts, err := a.blogService.AllPosts()
	if err != nil {
		logger.Error("load feed err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	html(c, "index.html", "Home", gin.H{"posts": posts})
}

func (a *IndexController) signupPage(c *gin.Context) {
	html(c, "register.html", "Sign Up", nil)
}

// signup registers a new user. Duplicate email or username each produce a
// danger flash and a redirect back to the form; no password strength or
// email format validation is performed.
func (a *IndexController) signup(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "danger", "Invalid form data.")
		c.Redirect(http.StatusFound, "/signup")
		return
	}

	err := a.userService.Register(form.FirstName, form.LastName, form.Username, form.Email, form.Password)
	switch err {
	case nil:
	case service.ErrEmailTaken:
		session.AddFlash(c, "danger", "Email already exists, try a different one.")
		c.Redirect(http.StatusFound, "/signup")
		return
	case service.ErrUsernameTaken:
		session.AddFlash(c, "danger", "Username already exists, try a different one.")
		c.Redirect(http.StatusFound, "/signup")
		return
	default:
		logger.Error("register err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	logger.Infof("user %s registered, IP: %s, req: %s", form.Username, getRemoteIp(c), getRequestId(c))
	session.AddFlash(c, "success", "Signup successful!")
	c.Redirect(http.StatusFound, "/login")
}

func (a *IndexController) loginPage(c *gin.Context) {
	html(c, "login.html", "Login", nil)
}

// login authenticates by email and password. Failure shows one generic
// message regardless of which check failed.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "danger", "Invalid form data.")
		html(c, "login.html", "Login", nil)
		return
	}

	user := a.userService.CheckUser(form.Email, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %s, req: %s", form.Email, getRemoteIp(c), getRequestId(c))
		session.AddFlash(c, "danger", "Invalid email or password.")
		html(c, "login.html", "Login", nil)
		return
	}

	if err := session.SetLoginUser(c, session.LoginUser{Id: user.Id, Username: user.Username}); err != nil {
		logger.Warning("unable to save session:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s, req: %s", user.Username, getRemoteIp(c), getRequestId(c))
	session.AddFlash(c, "success", "Login successful!")
	c.Redirect(http.StatusFound, "/dashboard")
}

// logout clears the login user, leaving the rest of the session intact so
// the goodbye flash survives the redirect.
func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out", user.Username)
	}
	if err := session.ClearLoginUser(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	session.AddFlash(c, "info", "You have been logged out.")
	c.Redirect(http.StatusFound, "/login")
}
