package web

import (
	"log"
	"net/http"
	"yatube/auth"

	"github.com/gin-gonic/gin"
)

// render adds the current user (when logged in) so every page can
// build its navigation
func render(c *gin.Context, code int, name string, data gin.H) {
	user := auth.LoadSession(c).User()
	if user.ID != 0 {
		data["user"] = &user
	}
	c.HTML(code, name, data)
}

func renderNotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.tmpl", gin.H{})
}

func internalError(c *gin.Context, err error) {
	log.Printf("internal error on %s: %v", c.Request.URL.Path, err)
	c.String(http.StatusInternalServerError, "server error")
}
