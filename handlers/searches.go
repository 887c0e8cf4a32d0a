package handlers

import (
	"net/http"

	"github.com/mailslurper/settings-service/settings"
)

// SavedSearches is a HTTP server for saved search management.
// It provides list, create, details and delete APIs.
// Saved searches are addressed by their position in the list.
type SavedSearches struct {
	service *settings.Service
}

// NewSavedSearches initiates a new saved searches server.
func NewSavedSearches(service *settings.Service) *SavedSearches {
	return &SavedSearches{service}
}

func (s *SavedSearches) List() http.Handler {
	return http.HandlerFunc(s.ListFunc)
}

func (s *SavedSearches) Create() http.Handler {
	return UseJson(http.HandlerFunc(s.CreateFunc))
}

func (s *SavedSearches) Details() http.Handler {
	return http.HandlerFunc(s.DetailsFunc)
}

func (s *SavedSearches) Delete() http.Handler {
	return http.HandlerFunc(s.DeleteFunc)
}
