package services

import (
	"context"
	"time"

	"github.com/Sl1me945/TaskManager/internal/repositories"
	"github.com/Sl1me945/TaskManager/internal/utils"
)

// RevocationCleanupService sweeps expired revocation entries on a
// schedule. The store already purges stale entries lazily on lookup;
// the sweep covers jtis nobody ever asks about again.
type RevocationCleanupService interface {
	Cleanup(ctx context.Context) error
}

type revocationCleanupService struct {
	store *repositories.RevocationStore
}

func NewRevocationCleanupService(store *repositories.RevocationStore) RevocationCleanupService {
	return &revocationCleanupService{store: store}
}

func (s *revocationCleanupService) Cleanup(ctx context.Context) error {
	removed := s.store.Sweep(time.Now().UTC())
	if removed > 0 {
		utils.Logger.Infof("Revocation sweep removed %d expired entries", removed)
	}
	return nil
}
