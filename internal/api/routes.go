package api

import (
	"net/http"

	"plenario/internal/config"
	"plenario/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	storage := newStorageHandler(runtime.Storage, runtime.Logger)

	routes.Register(
		mux,
		domain.Members.Handler().Routes(),
		domain.Cases.Handler().Routes(),
		domain.Sessions.Handler().Routes(),
		domain.Distribution.Handler().Routes(),
		domain.Votes.Handler().Routes(),
		domain.Decisions.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Notifications.Handler().Routes(),
		storage.routes(),
	)
}
