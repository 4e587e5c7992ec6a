package handler

import (
	"net/http"
	"slotlink/config"
	"slotlink/di"
	"slotlink/shared/logger"
	"sync"

	httpTransport "slotlink/transport/http"
)

var (
	server *httpTransport.HTTP
	once   sync.Once
)

// Handler is the serverless entry point. The service graph is built on the first request and reused
// while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetOutput(cfg)
		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	server.Handler().ServeHTTP(w, r)
}
