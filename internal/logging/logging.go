package logging

import (
	"io"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/natefinch/lumberjack"
)

// Setup routes the standard logger and gin's writers through a size-capped
// rotating file while keeping stdout. An empty path leaves stdout-only
// logging in place.
func Setup(path string) {
	if path == "" {
		return
	}
	rotated := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	w := io.MultiWriter(os.Stdout, rotated)
	log.SetOutput(w)
	gin.DefaultWriter = w
	gin.DefaultErrorWriter = w
}
