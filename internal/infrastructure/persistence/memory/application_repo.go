package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bibbank/loan-origination/internal/domain/model"
)

// ApplicationRepo implements port.ApplicationRepository in process memory.
// It is the session store for a single engine instance.
type ApplicationRepo struct {
	mu        sync.RWMutex
	snapshots map[string]model.ApplicationSnapshot
}

// NewApplicationRepo creates an empty store.
func NewApplicationRepo() *ApplicationRepo {
	return &ApplicationRepo{snapshots: make(map[string]model.ApplicationSnapshot)}
}

// Save stores the application if nobody saved it since it was loaded.
func (r *ApplicationRepo) Save(_ context.Context, app model.LoanApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := 0
	if existing, ok := r.snapshots[app.ID()]; ok {
		stored = existing.Version
	}
	if stored != app.Version() {
		return fmt.Errorf("application %s at version %d, stored %d: %w",
			app.ID(), app.Version(), stored, model.ErrConcurrentModification)
	}

	s := app.Snapshot()
	s.Version = stored + 1
	r.snapshots[app.ID()] = s
	return nil
}

// FindByID restores the stored application.
func (r *ApplicationRepo) FindByID(_ context.Context, id string) (model.LoanApplication, error) {
	r.mu.RLock()
	s, ok := r.snapshots[id]
	r.mu.RUnlock()
	if !ok {
		return model.LoanApplication{}, fmt.Errorf("application %s: %w", id, model.ErrApplicationNotFound)
	}
	return model.RestoreLoanApplication(s)
}

// FindByCustomerID returns every application of the customer in no
// particular order.
func (r *ApplicationRepo) FindByCustomerID(_ context.Context, customerID string) ([]model.LoanApplication, error) {
	r.mu.RLock()
	var matched []model.ApplicationSnapshot
	for _, s := range r.snapshots {
		if s.CustomerID == customerID {
			matched = append(matched, s)
		}
	}
	r.mu.RUnlock()

	apps := make([]model.LoanApplication, 0, len(matched))
	for _, s := range matched {
		app, err := model.RestoreLoanApplication(s)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// Ping always succeeds.
func (r *ApplicationRepo) Ping(context.Context) error { return nil }
