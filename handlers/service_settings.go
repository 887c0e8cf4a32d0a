package handlers

import (
	"net/http"

	"github.com/mailslurper/settings-service/settings"
)

// ServiceSettings is a HTTP server for the stored service connection
// settings and the service URL derived from them.
type ServiceSettings struct {
	service *settings.Service
}

func NewServiceSettings(service *settings.Service) *ServiceSettings {
	return &ServiceSettings{service}
}

func (s *ServiceSettings) Get() http.Handler {
	return http.HandlerFunc(s.GetFunc)
}

func (s *ServiceSettings) Set() http.Handler {
	return UseJson(http.HandlerFunc(s.SetFunc))
}

func (s *ServiceSettings) Exists() http.Handler {
	return http.HandlerFunc(s.ExistsFunc)
}

func (s *ServiceSettings) URL() http.Handler {
	return http.HandlerFunc(s.URLFunc)
}

func (s *ServiceSettings) Remote() http.Handler {
	return http.HandlerFunc(s.RemoteFunc)
}

func (s *ServiceSettings) Sync() http.Handler {
	return http.HandlerFunc(s.SyncFunc)
}

// Defaults serves the given settings the way a MailSlurper server answers
// GET /servicesettings.
func Defaults(defaults *settings.ServiceSettings) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		handleJsonResponse(rw, http.StatusOK, defaults)
	})
}
