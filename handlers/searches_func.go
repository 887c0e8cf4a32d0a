package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mailslurper/settings-service/datastore"
	apierrors "github.com/mailslurper/settings-service/errors"
	"github.com/mailslurper/settings-service/settings"
)

// ListFunc returns the saved searches, optionally windowed by limit and offset.
func (s *SavedSearches) ListFunc(rw http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.FormValue("limit"))
	if err != nil {
		limit = 0
	}

	offset, err := strconv.Atoi(r.FormValue("offset"))
	if err != nil {
		offset = 0
	}

	searches, err := s.service.RetrieveSavedSearches()
	if err != nil {
		handleError(rw, r, err)
		return
	}

	start, end := datastore.ParseListOptions(limit, offset).Bounds(len(searches))

	handleJsonResponse(rw, http.StatusOK, searches[start:end])
}

// CreateFunc appends a saved search. The body is the search criteria with
// its "name".
func (s *SavedSearches) CreateFunc(rw http.ResponseWriter, r *http.Request) {
	if err := checkNonEmptyBody(r); err != nil {
		handleError(rw, r, err)
		return
	}

	criteria := settings.SavedSearch{}
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil || criteria == nil {
		handleError(rw, r, InvalidBodyError)
		return
	}

	if err := s.service.AddSavedSearch(criteria.Name(), criteria); err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusCreated, criteria)
}

// DetailsFunc returns the saved search at the index in the URL. An index
// out of range answers with an empty search.
func (s *SavedSearches) DetailsFunc(rw http.ResponseWriter, r *http.Request) {
	index, err := indexVar(r)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	res, err := s.service.GetSavedSearchByIndex(index)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	handleJsonResponse(rw, http.StatusOK, res)
}

// DeleteFunc removes the saved search at the index in the URL. An index out
// of range is not an error.
func (s *SavedSearches) DeleteFunc(rw http.ResponseWriter, r *http.Request) {
	index, err := indexVar(r)
	if err != nil {
		handleError(rw, r, err)
		return
	}

	if err := s.service.DeleteSavedSearch(index); err != nil {
		handleError(rw, r, err)
		return
	}

	rw.WriteHeader(http.StatusNoContent)
}

func indexVar(r *http.Request) (int, error) {
	raw := mux.Vars(r)["index"]
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.BadRequest("invalid saved search index %q", raw)
	}
	return index, nil
}
