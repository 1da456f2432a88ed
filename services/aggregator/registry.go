package aggregator

import (
	"errors"
	"sync"

	"tripdesk/config"
	"tripdesk/models"
)

// ErrPartnerNotFound covers both an unknown partner id and a partner that is
// deliberately inactive. The dashboard treats the two as one case: inactive
// partners are hidden from data access but still listed in the config view.
var ErrPartnerNotFound = errors.New("partner website not found or inactive")

// Registry holds the partner descriptor table. Active flags are process-wide
// mutable state; an aggregation running concurrently with SetActive may
// observe either the old or the new flag. Restarting the process resets all
// flags to their seeded values.
type Registry struct {
	mu       sync.RWMutex
	partners []models.PartnerDescriptor
}

// NewRegistry seeds the registry with the built-in partner table. Base URLs
// come from configuration so staging deployments can point at sandboxes.
func NewRegistry() *Registry {
	return NewRegistryWith([]models.PartnerDescriptor{
		{
			ID:      "skytrips",
			Name:    "SkyTrips",
			BaseURL: config.AppConfig.SkyTripsBaseURL,
			Endpoints: models.PartnerEndpoints{
				GetUserDetails: "/api/users/details",
				DeleteBooking:  "/api/bookings",
			},
			Active: true,
		},
		{
			ID:      "voyagio",
			Name:    "Voyagio",
			BaseURL: config.AppConfig.VoyagioBaseURL,
			Endpoints: models.PartnerEndpoints{
				GetUserDetails: "/v2/customers/bookings",
				DeleteBooking:  "/v2/bookings",
			},
			Active: true,
		},
		{
			ID:      "jetquest",
			Name:    "JetQuest",
			BaseURL: config.AppConfig.JetQuestBaseURL,
			Endpoints: models.PartnerEndpoints{
				GetUserDetails: "/api/v1/flight-users",
				DeleteBooking:  "/api/v1/flight-users",
			},
			Active: true,
		},
	})
}

// NewRegistryWith builds a registry from an explicit descriptor table.
func NewRegistryWith(partners []models.PartnerDescriptor) *Registry {
	return &Registry{partners: partners}
}

// List returns a copy of all descriptors in registry order, active or not.
func (r *Registry) List() []models.PartnerDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.PartnerDescriptor, len(r.partners))
	copy(out, r.partners)
	return out
}

// ListActive returns all descriptors with Active set, in registry order.
func (r *Registry) ListActive() []models.PartnerDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.PartnerDescriptor
	for _, p := range r.partners {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the descriptor with the given id regardless of its active
// flag. Callers decide whether inactive is acceptable.
func (r *Registry) Find(id string) (*models.PartnerDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.partners {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrPartnerNotFound
}

// SetActive mutates the in-memory active flag of the matching descriptor and
// returns the updated descriptor.
func (r *Registry) SetActive(id string, active bool) (*models.PartnerDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.partners {
		if r.partners[i].ID == id {
			r.partners[i].Active = active
			cp := r.partners[i]
			return &cp, nil
		}
	}
	return nil, ErrPartnerNotFound
}

// Counts reports the number of active descriptors and the table size.
func (r *Registry) Counts() (active int, total int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.partners {
		if p.Active {
			active++
		}
	}
	return active, len(r.partners)
}
