package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mailslurper/settings-service/settings"
	log "github.com/sirupsen/logrus"
)

// GetFunc returns the stored service settings, 404 if there are none.
func (s *ServiceSettings) GetFunc(rw http.ResponseWriter, r *http.Request) {
	res, err := s.service.RetrieveServiceSettings()
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// SetFunc replaces the stored service settings with the body.
func (s *ServiceSettings) SetFunc(rw http.ResponseWriter, r *http.Request) {
	if err := checkNonEmptyBody(r); err != nil {
		handleError(rw, r, err)
		return
	}

	ss := &settings.ServiceSettings{}
	if err := json.NewDecoder(r.Body).Decode(ss); err != nil {
		handleError(rw, r, InvalidBodyError)
		return
	}

	if err := s.service.StoreServiceSettings(ss); err != nil {
		handleError(rw, r, err)
		return
	}

	log.WithFields(log.Fields{"settings": ss}).Debug("Service settings stored")

	handleJsonResponse(rw, http.StatusOK, ss)
}

// ExistsFunc answers 200 if service settings are stored and 404 otherwise.
func (s *ServiceSettings) ExistsFunc(rw http.ResponseWriter, r *http.Request) {
	exists, err := s.service.ServiceSettingsExistInLocalStore()
	if err != nil {
		handleError(rw, r, err)
		return
	}

	if !exists {
		rw.WriteHeader(http.StatusNotFound)
		return
	}

	rw.WriteHeader(http.StatusOK)
}

// URLFunc returns {"serviceURL": ...} built from the stored settings.
func (s *ServiceSettings) URLFunc(rw http.ResponseWriter, r *http.Request) {
	d, err := s.service.GetServiceURL(map[string]interface{}{})
	if err != nil {
		handleError(rw, r, err)
		return
	}

	res, err := d.Await(r.Context())
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// RemoteFunc fetches the peer's service settings and returns its body as is.
func (s *ServiceSettings) RemoteFunc(rw http.ResponseWriter, r *http.Request) {
	res, err := s.service.GetServiceSettings(r.Context()).Await(r.Context())
	if err != nil {
		handleError(rw, r, err)
		return
	}

	if len(res.Raw) > 0 {
		handleJsonResponse(rw, http.StatusOK, res.Raw)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// SyncFunc stores the peer's service settings unless some are stored
// already, and returns the settings in effect.
func (s *ServiceSettings) SyncFunc(rw http.ResponseWriter, r *http.Request) {
	res, err := s.service.EnsureServiceSettings(r.Context())
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}
