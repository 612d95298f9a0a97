package services

import (
	"context"
	"errors"

	"github.com/GregMSThompson/widget-dashboard/internal/dto"
	"github.com/GregMSThompson/widget-dashboard/internal/errs"
	"github.com/GregMSThompson/widget-dashboard/internal/models"
	"github.com/GregMSThompson/widget-dashboard/pkg/logger"
)

type profileStore interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

// profileService assembles the data snapshot widget bodies render from. The
// owner profile comes from the profile store when one is configured; every
// other feed comes from the base snapshot.
type profileService struct {
	store profileStore
	base  func() dto.DashboardData
}

func NewProfileService(store profileStore, base func() dto.DashboardData) *profileService {
	return &profileService{store: store, base: base}
}

// Snapshot returns the data snapshot for uid. Profile lookup failures fall
// back to the base profile.
func (s *profileService) Snapshot(ctx context.Context, uid string) dto.DashboardData {
	data := s.base()
	if s.store == nil || uid == "" {
		return data
	}

	log := logger.FromContext(ctx)
	user, err := s.store.GetUser(ctx, uid)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			log.Debug("no profile for user, using base profile")
		} else {
			log.Warn("failed to load profile, using base profile", "error", err)
		}
		return data
	}

	data.User = *user
	return data
}
