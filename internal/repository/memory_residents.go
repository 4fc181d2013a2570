package repository

import (
	"context"
	"fmt"
	"sync"

	"carewatch/internal/domain"
)

// MemoryResidentsRepository supports roster access when DB is disabled
// (development and demo environments). Order of the seeded slice is the
// roster order used by the measurement scheduler.
type MemoryResidentsRepository struct {
	mu     sync.RWMutex
	roster []domain.Resident
}

func NewMemoryResidentsRepository() *MemoryResidentsRepository {
	return &MemoryResidentsRepository{}
}

var _ ResidentsRepository = (*MemoryResidentsRepository)(nil)

// Seed replaces the roster content.
func (r *MemoryResidentsRepository) Seed(roster []domain.Resident) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.roster = make([]domain.Resident, len(roster))
	copy(r.roster, roster)
}

func (r *MemoryResidentsRepository) ListRoster(_ context.Context) ([]domain.Resident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Resident, len(r.roster))
	copy(out, r.roster)
	return out, nil
}

func (r *MemoryResidentsRepository) GetResident(_ context.Context, residentID string) (*domain.Resident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, resident := range r.roster {
		if resident.ResidentID == residentID {
			out := resident
			return &out, nil
		}
	}
	return nil, fmt.Errorf("resident %s: %w", residentID, domain.ErrNotFound)
}
