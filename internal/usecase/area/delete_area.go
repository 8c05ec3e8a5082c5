package area

import (
	"context"

	"github.com/LaundryServices01/laundry-admin/internal/audit"
	domain "github.com/LaundryServices01/laundry-admin/internal/domain/area"
	"github.com/LaundryServices01/laundry-admin/internal/httperr"
)

type DeleteArea struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteArea(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *DeleteArea {
	return &DeleteArea{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute removes the area and, through the cascade, its grid. Deletion is
// refused while postcodes still reference the area.
func (uc *DeleteArea) Execute(
	ctx context.Context,
	actorID uint,
	areaID uint,
) error {

	a, err := uc.repo.GetAreaByID(ctx, areaID)
	if err != nil {
		return httperr.ErrBusiness("area_not_found")
	}

	count, err := uc.repo.CountPostcodes(ctx, areaID)
	if err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrBusiness("area_has_postcodes")
	}

	if err := uc.repo.DeleteArea(ctx, areaID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "area_deleted",
		Entity:   "area",
		EntityID: &a.ID,
		Metadata: map[string]any{"name": a.Name},
	})

	return nil
}
