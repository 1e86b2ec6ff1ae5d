package web

import (
	"strings"
	"yatube/storage"

	"github.com/gin-gonic/gin"
)

// Media serves stored post images and thumbnails
func Media(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" || strings.Contains(path, "..") {
		renderNotFound(c)
		return
	}
	s := storage.GetDefaultStorage()
	if s == nil {
		renderNotFound(c)
		return
	}
	if err := s.EnsureLocalFile(path); err != nil {
		renderNotFound(c)
		return
	}
	s.Serve(path, c.Request, c.Writer)
}
