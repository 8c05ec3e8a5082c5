package area

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/LaundryServices01/laundry-admin/internal/audit"
	domain "github.com/LaundryServices01/laundry-admin/internal/domain/area"
	"github.com/LaundryServices01/laundry-admin/internal/httperr"
	"github.com/LaundryServices01/laundry-admin/internal/models"
)

type CreateArea struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	bands []domain.Band
}

func NewCreateArea(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	bands []domain.Band,
) *CreateArea {
	if len(bands) == 0 {
		bands = domain.DefaultBands()
	}
	return &CreateArea{
		repo:  repo,
		audit: auditDispatcher,
		bands: bands,
	}
}

// Execute creates the area together with its full inactive weekly grid.
// Area row and grid share one transaction, so a grid failure never leaves
// an area without slots.
func (uc *CreateArea) Execute(
	ctx context.Context,
	actorID uint,
	name string,
) (*models.Area, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, httperr.ErrBusiness("name_required")
	}

	taken, err := uc.repo.NameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness("area_already_exists")
	}

	a := &models.Area{Name: name}
	slots := domain.BuildGrid(0, uc.bands)

	if err := uc.repo.CreateAreaWithSlots(ctx, a, slots); err != nil {
		// The pre-check races with concurrent creates; the unique index
		// is the authority and its violation is still a client error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, httperr.ErrBusiness("area_already_exists")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "area_created",
		Entity:   "area",
		EntityID: &a.ID,
		Metadata: map[string]any{"name": a.Name, "slots": len(a.TimeSlots)},
	})

	return a, nil
}
