package area

import (
	"context"

	"github.com/LaundryServices01/laundry-admin/internal/audit"
	domain "github.com/LaundryServices01/laundry-admin/internal/domain/area"
	"github.com/LaundryServices01/laundry-admin/internal/httperr"
)

type ToggleDay struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewToggleDay(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *ToggleDay {
	return &ToggleDay{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute flips every slot of one weekday for the area and returns the
// number of rows updated. A day with no slots updates zero rows and is
// still a success.
func (uc *ToggleDay) Execute(
	ctx context.Context,
	actorID uint,
	areaID uint,
	day int,
	active bool,
) (int64, error) {

	if !domain.IsValidDay(day) {
		return 0, httperr.ErrBusiness("invalid_day_of_week")
	}

	a, err := uc.repo.GetAreaByID(ctx, areaID)
	if err != nil {
		return 0, httperr.ErrBusiness("area_not_found")
	}

	count, err := uc.repo.SetDayActive(ctx, areaID, day, active)
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "time_slots_day_toggled",
		Entity:   "area",
		EntityID: &a.ID,
		Metadata: map[string]any{
			"day":       day,
			"day_name":  domain.DayName(day),
			"is_active": active,
			"updated":   count,
		},
	})

	return count, nil
}
