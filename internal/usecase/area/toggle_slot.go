package area

import (
	"context"

	"github.com/LaundryServices01/laundry-admin/internal/audit"
	domain "github.com/LaundryServices01/laundry-admin/internal/domain/area"
	"github.com/LaundryServices01/laundry-admin/internal/httperr"
	"github.com/LaundryServices01/laundry-admin/internal/models"
)

type ToggleSlot struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewToggleSlot(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *ToggleSlot {
	return &ToggleSlot{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute sets is_active on one slot. The slot must belong to the area;
// a slot of another area is reported as not found.
func (uc *ToggleSlot) Execute(
	ctx context.Context,
	actorID uint,
	areaID uint,
	slotID uint,
	active bool,
) (*models.TimeSlot, error) {

	slot, err := uc.repo.GetSlotForArea(ctx, areaID, slotID)
	if err != nil {
		return nil, httperr.ErrBusiness("time_slot_not_found")
	}

	if err := uc.repo.SetSlotActive(ctx, slot, active); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "time_slot_toggled",
		Entity:   "time_slot",
		EntityID: &slot.ID,
		Metadata: map[string]any{"area_id": areaID, "is_active": active},
	})

	return slot, nil
}
