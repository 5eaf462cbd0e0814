package handler

import (
	"net/http"
	"studio/config"
	"studio/di"
	"studio/shared/logger"
	"studio/shared/timezone"
	"sync"
)

var (
	app     http.Handler
	appOnce sync.Once
)

// Handler is the serverless entrypoint. The dependency graph is built on the
// first request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	appOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		timezone.Init(cfg.App.Timezone)

		app = di.InitializeService().Adaptor()
	})

	r.RequestURI = r.URL.String()

	app.ServeHTTP(w, r)
}
