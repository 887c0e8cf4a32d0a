// Package settings persists the MailSlurper front end's saved searches and
// service connection settings, and derives the service URL from them.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Store keys. No other keys are touched.
const (
	SavedSearchesKey   = "savedSearches"
	ServiceSettingsKey = "serviceSettings"
)

var (
	// ErrServiceSettingsNotFound is returned when no service settings were
	// ever stored.
	ErrServiceSettingsNotFound = errors.New("service settings not found in local store")

	// ErrNoPeer is the rejection of GetServiceSettings on a service built
	// without a peer.
	ErrNoPeer = errors.New("no service settings peer configured")
)

// SavedSearch is a named set of search criteria. Apart from "name" the
// fields are opaque and stored verbatim.
type SavedSearch map[string]interface{}

// Name returns the display label, or "" if unset.
func (s SavedSearch) Name() string {
	name, _ := s["name"].(string)
	return name
}

// emptySavedSearch is returned for a lookup that misses.
func emptySavedSearch() SavedSearch {
	return SavedSearch{
		"name":          "",
		"searchMessage": "",
	}
}

// ServiceSettings tells the front end how to reach the MailSlurper service.
type ServiceSettings struct {
	ServiceAddress string `json:"serviceAddress"`
	ServicePort    Port   `json:"servicePort"`
	Version        string `json:"version"`

	// Raw holds the body a peer answered with, unknown fields included.
	// StoreServiceSettings writes it verbatim while the fields still match.
	Raw json.RawMessage `json:"-"`
}

func (s *ServiceSettings) String() string {
	return fmt.Sprintf("ServiceAddress: %s, ServicePort: %s, Version: %s", s.ServiceAddress, s.ServicePort, s.Version)
}

// ServiceURL formats the address as http://{address}:{port}/{version}.
func (s *ServiceSettings) ServiceURL() string {
	return "http://" + s.ServiceAddress + ":" + s.ServicePort.String() + "/" + s.Version
}

// Port is a service port as it was written, a JSON string or a JSON number.
type Port struct {
	Value   string
	Numeric bool
}

func StringPort(s string) Port {
	return Port{Value: s}
}

func NumericPort(n int) Port {
	return Port{Value: fmt.Sprintf("%d", n), Numeric: true}
}

func (p Port) String() string {
	return p.Value
}

func (p Port) MarshalJSON() ([]byte, error) {
	if p.Numeric {
		return []byte(p.Value), nil
	}
	return json.Marshal(p.Value)
}

func (p *Port) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = Port{}
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = StringPort(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid service port %s: %w", b, err)
	}
	*p = Port{Value: n.String(), Numeric: true}
	return nil
}

// PeerStatusError is returned when the peer answers with a non-200 status.
type PeerStatusError struct {
	StatusCode int
}

func (e *PeerStatusError) Error() string {
	return fmt.Sprintf("service settings peer responded with an unexpected status code: %d", e.StatusCode)
}
