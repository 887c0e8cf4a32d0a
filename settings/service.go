package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mailslurper/settings-service/deferred"
	"github.com/mailslurper/settings-service/storage"
	log "github.com/sirupsen/logrus"
)

// Service reads and writes the two settings records in a storage.Store.
// It keeps no state of its own; every call is a fresh read or a
// read-modify-write, and concurrent writers may overwrite each other.
type Service struct {
	store   storage.Store
	peer    Peer
	alerter Alerter
}

func NewService(store storage.Store, opts ...ServiceOption) *Service {
	svc := &Service{
		store:   store,
		alerter: LogAlerter{},
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc
}

// AddSavedSearch sets name on criteria and appends it to the stored saved
// searches. criteria is modified in place. Names need not be unique.
func (svc *Service) AddSavedSearch(name string, criteria SavedSearch) error {
	if criteria == nil {
		criteria = SavedSearch{}
	}
	criteria["name"] = name

	searches, err := svc.RetrieveSavedSearches()
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"name": name, "position": len(searches)}).Trace("Add saved search")

	searches = append(searches, criteria)
	return svc.StoreSavedSearches(searches)
}

// DeleteSavedSearch removes the saved search at index. Later searches move
// down by one. An index out of range is ignored.
func (svc *Service) DeleteSavedSearch(index int) error {
	searches, err := svc.RetrieveSavedSearches()
	if err != nil {
		return err
	}

	if index > -1 && index < len(searches) {
		log.WithFields(log.Fields{"index": index}).Trace("Delete saved search")
		searches = append(searches[:index], searches[index+1:]...)
		return svc.StoreSavedSearches(searches)
	}

	return nil
}

// GetSavedSearchByIndex returns the saved search at index. For an index
// out of range it alerts and returns a search with empty name and
// searchMessage.
func (svc *Service) GetSavedSearchByIndex(index int) (SavedSearch, error) {
	searches, err := svc.RetrieveSavedSearches()
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(searches) {
		svc.alerter.Error(Alert{Message: "There is no saved search by that ID"})
		return emptySavedSearch(), nil
	}

	return searches[index], nil
}

// GetServiceSettings asks the peer for its service settings. The returned
// value settles when the peer answers; the local store is not involved.
func (svc *Service) GetServiceSettings(ctx context.Context) *deferred.Value[*ServiceSettings] {
	if svc.peer == nil {
		return deferred.Rejected[*ServiceSettings](ErrNoPeer)
	}

	return deferred.Go(func() (*ServiceSettings, error) {
		return svc.peer.FetchServiceSettings(ctx)
	})
}

// GetServiceURL sets "serviceURL" on c from the stored service settings and
// returns c as an already resolved value. c is modified in place; a nil c
// is replaced by a new map. Missing settings are reported as the error.
func (svc *Service) GetServiceURL(c map[string]interface{}) (*deferred.Value[map[string]interface{}], error) {
	serviceURL, err := svc.GetServiceURLNow()
	if err != nil {
		return nil, err
	}

	if c == nil {
		c = make(map[string]interface{})
	}
	c["serviceURL"] = serviceURL

	return deferred.Resolved(c), nil
}

// GetServiceURLNow returns the service URL built from the stored settings.
func (svc *Service) GetServiceURLNow() (string, error) {
	s, err := svc.RetrieveServiceSettings()
	if err != nil {
		return "", err
	}
	return s.ServiceURL(), nil
}

// RetrieveSavedSearches returns the stored saved searches, or an empty list
// if none were ever stored.
func (svc *Service) RetrieveSavedSearches() ([]SavedSearch, error) {
	raw, found, err := svc.store.Get(SavedSearchesKey)
	if err != nil {
		return nil, fmt.Errorf("error while reading saved searches: %w", err)
	}

	searches := []SavedSearch{}
	if !found || raw == "" {
		return searches, nil
	}

	if err := json.Unmarshal([]byte(raw), &searches); err != nil {
		return nil, fmt.Errorf("error while decoding saved searches: %w", err)
	}

	if searches == nil {
		searches = []SavedSearch{}
	}

	return searches, nil
}

// RetrieveServiceSettings returns the stored service settings. It fails
// with ErrServiceSettingsNotFound if they were never stored.
func (svc *Service) RetrieveServiceSettings() (*ServiceSettings, error) {
	raw, found, err := svc.store.Get(ServiceSettingsKey)
	if err != nil {
		return nil, fmt.Errorf("error while reading service settings: %w", err)
	}

	if !found {
		return nil, ErrServiceSettingsNotFound
	}

	s := &ServiceSettings{}
	if err := json.Unmarshal([]byte(raw), s); err != nil {
		return nil, fmt.Errorf("error while decoding service settings: %w", err)
	}

	return s, nil
}

// ServiceSettingsExistInLocalStore reports whether service settings were
// stored. The stored value is not validated.
func (svc *Service) ServiceSettingsExistInLocalStore() (bool, error) {
	_, found, err := svc.store.Get(ServiceSettingsKey)
	if err != nil {
		return false, fmt.Errorf("error while reading service settings: %w", err)
	}
	return found, nil
}

// StoreSavedSearches replaces the stored saved searches.
func (svc *Service) StoreSavedSearches(searches []SavedSearch) error {
	if searches == nil {
		searches = []SavedSearch{}
	}

	b, err := json.Marshal(searches)
	if err != nil {
		return fmt.Errorf("error while encoding saved searches: %w", err)
	}

	return svc.store.Set(SavedSearchesKey, string(b))
}

// StoreServiceSettings replaces the stored service settings. Settings that
// came from a peer keep the peer's extra fields; the peer's body is stored
// verbatim unless the settings were edited since.
func (svc *Service) StoreServiceSettings(s *ServiceSettings) error {
	b, err := encodeServiceSettings(s)
	if err != nil {
		return fmt.Errorf("error while encoding service settings: %w", err)
	}

	log.WithFields(log.Fields{"settings": s}).Trace("Store service settings")

	return svc.store.Set(ServiceSettingsKey, string(b))
}

func encodeServiceSettings(s *ServiceSettings) ([]byte, error) {
	if len(s.Raw) == 0 {
		return json.Marshal(s)
	}

	var raw ServiceSettings
	if err := json.Unmarshal(s.Raw, &raw); err == nil &&
		raw.ServiceAddress == s.ServiceAddress &&
		raw.ServicePort == s.ServicePort &&
		raw.Version == s.Version {
		return s.Raw, nil
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(s.Raw, &fields); err != nil {
		// Not an object, the fields are all there is.
		return json.Marshal(s)
	}

	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	known := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &known); err != nil {
		return nil, err
	}
	for k, v := range known {
		fields[k] = v
	}

	return json.Marshal(fields)
}

// EnsureServiceSettings returns the stored service settings, fetching and
// storing them from the peer first if there are none.
func (svc *Service) EnsureServiceSettings(ctx context.Context) (*ServiceSettings, error) {
	exists, err := svc.ServiceSettingsExistInLocalStore()
	if err != nil {
		return nil, err
	}

	if exists {
		return svc.RetrieveServiceSettings()
	}

	log.Debug("No service settings in local store, fetching from peer")

	s, err := svc.GetServiceSettings(ctx).Await(ctx)
	if err != nil {
		return nil, err
	}

	if err := svc.StoreServiceSettings(s); err != nil {
		return nil, err
	}

	return s, nil
}
