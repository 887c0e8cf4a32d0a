// Package handlers provides HTTP handlers for the settings service.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	apierrors "github.com/mailslurper/settings-service/errors"
	"github.com/mailslurper/settings-service/settings"
	log "github.com/sirupsen/logrus"
)

var (
	EmptyBodyError   = &apierrors.RequestError{StatusCode: http.StatusBadRequest, Err: fmt.Errorf("empty body")}
	InvalidBodyError = &apierrors.RequestError{StatusCode: http.StatusBadRequest, Err: fmt.Errorf("invalid body")}
)

// handleError is a helper function for unified HTTP error handling.
func handleError(rw http.ResponseWriter, r *http.Request, err error) {
	reqErr := asRequestError(err)

	fields := log.Fields{"error": err}
	if r != nil {
		fields["method"] = r.Method
		fields["path"] = r.URL.Path
	}

	if reqErr == nil {
		log.WithFields(fields).Error("Error while handling request")
		// Do not send data regarding the error
		http.Error(rw, "Error", http.StatusInternalServerError)
		return
	}

	log.WithFields(fields).Debug("Request error")
	http.Error(rw, reqErr.Error(), reqErr.StatusCode)
}

// asRequestError maps known errors to a RequestError, nil if unknown.
func asRequestError(err error) *apierrors.RequestError {
	var reqErr *apierrors.RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}

	var peerErr *settings.PeerStatusError
	switch {
	case errors.Is(err, settings.ErrServiceSettingsNotFound):
		return apierrors.NotFound(err)
	case errors.Is(err, settings.ErrNoPeer), errors.As(err, &peerErr):
		return &apierrors.RequestError{StatusCode: http.StatusBadGateway, Err: err}
	}

	return nil
}

// handleJsonResponse is a helper function for unified JSON response handling.
func handleJsonResponse(rw http.ResponseWriter, status int, res interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if err := json.NewEncoder(rw).Encode(res); err != nil {
		log.WithFields(log.Fields{"error": err}).Warn("Error while encoding response")
	}
}

func checkNonEmptyBody(r *http.Request) error {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return EmptyBodyError
	}
	return nil
}
