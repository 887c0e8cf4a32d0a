package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mailslurper/settings-service/settings"
)

// NewRouter wires the settings API under /{apiVersion} and, when defaults
// is not nil, the /servicesettings endpoint a front end bootstraps from.
func NewRouter(service *settings.Service, info BuildInfo, defaults *settings.ServiceSettings) *mux.Router {
	searchesHandler := NewSavedSearches(service)
	settingsHandler := NewServiceSettings(service)

	r := mux.NewRouter()

	if defaults != nil {
		r.Handle(settings.ServiceSettingsPath, Defaults(defaults)).Methods(http.MethodGet)
	}

	// Catch the api version
	rv := r.PathPrefix("/{apiVersion}").Subrouter()

	// Debug
	rv.Handle("/debug", Debug(info)).Methods(http.MethodGet)

	// Health
	rv.HandleFunc("/health/ready", HandleHealthReady).Methods(http.MethodGet)

	// Saved searches
	rv.Handle("/searches", searchesHandler.List()).Methods(http.MethodGet)                   // list
	rv.Handle("/searches", searchesHandler.Create()).Methods(http.MethodPost)                // create
	rv.Handle("/searches/{index:-?[0-9]+}", searchesHandler.Details()).Methods(http.MethodGet) // details
	rv.Handle("/searches/{index:-?[0-9]+}", searchesHandler.Delete()).Methods(http.MethodDelete)

	// Service settings
	rv.Handle("/settings", settingsHandler.Get()).Methods(http.MethodGet)
	rv.Handle("/settings", settingsHandler.Set()).Methods(http.MethodPost)
	rv.Handle("/settings", settingsHandler.Exists()).Methods(http.MethodHead)
	rv.Handle("/settings/url", settingsHandler.URL()).Methods(http.MethodGet)
	rv.Handle("/settings/remote", settingsHandler.Remote()).Methods(http.MethodGet) // fetch from peer
	rv.Handle("/settings/sync", settingsHandler.Sync()).Methods(http.MethodPost)    // fetch from peer if missing

	return r
}
