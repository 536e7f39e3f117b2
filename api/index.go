package handler

import (
	"net/http"
	"resto/config"
	"resto/di"
	"resto/shared/logger"
	"sync"
)

var (
	once    sync.Once
	service http.Handler
)

// Handler serves one request on a serverless runtime. The service graph is built on the
// first invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.Configure(config.Get())

		service = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	service.ServeHTTP(w, r)
}
