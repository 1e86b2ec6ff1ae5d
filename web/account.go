package web

import (
	"errors"
	"net/http"
	"strings"
	"yatube/auth"
	"yatube/models"

	"github.com/gin-gonic/gin"
)

func SignupView(c *gin.Context) {
	render(c, http.StatusOK, "signup.tmpl", gin.H{
		"form":   &SignupForm{},
		"errors": FieldErrors{},
	})
}

func SignupSubmit(c *gin.Context) {
	form := SignupForm{}
	_ = c.ShouldBind(&form)
	errs := form.Validate()
	if len(errs) == 0 {
		user, err := models.UserCreate(form.Username, form.Name, form.Email, form.Password)
		if errors.Is(err, models.ErrDuplicateUsername) {
			errs = FieldErrors{"username": ErrTaken}
		} else if err != nil {
			internalError(c, err)
			return
		} else {
			auth.LoadSession(c).LoginUser(&user)
			c.Redirect(http.StatusFound, "/")
			return
		}
	}
	render(c, http.StatusOK, "signup.tmpl", gin.H{
		"form":   &form,
		"errors": errs,
	})
}

func LoginView(c *gin.Context) {
	render(c, http.StatusOK, "login.tmpl", gin.H{
		"form":   &LoginForm{Next: c.Query("next")},
		"errors": FieldErrors{},
	})
}

func LoginSubmit(c *gin.Context) {
	form := LoginForm{}
	_ = c.ShouldBind(&form)
	user, ok := models.UserLogin(form.Username, form.Password)
	if !ok {
		render(c, http.StatusOK, "login.tmpl", gin.H{
			"form":   &form,
			"errors": FieldErrors{"password": ErrLoginFailed},
		})
		return
	}
	auth.LoadSession(c).LoginUser(&user)
	c.Redirect(http.StatusFound, safeNext(form.Next))
}

func Logout(c *gin.Context) {
	auth.LoadSession(c).LogoutUser()
	c.Redirect(http.StatusFound, "/")
}

// safeNext keeps post-login redirects on this site
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
