// Command shortener runs the TinyApp URL shortener HTTP server.
package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/tinyapp/internal/app"
	"github.com/patric-chuzhbe/tinyapp/internal/logger"
)

func main() {
	theApp, err := app.New()
	if err != nil {
		// The zap logger is configured by app.New, so it may not exist yet.
		log.Fatalf("app initialization failed: %v", err)
	}
	defer theApp.Close()

	if err := theApp.Run(); err != nil {
		logger.Log.Errorw("server stopped", zap.Error(err))
	}
}
