package area

import (
	"context"

	"github.com/LaundryServices01/laundry-admin/internal/models"
)

type Repository interface {
	// -------- Area --------
	GetAreaByID(
		ctx context.Context,
		id uint,
	) (*models.Area, error)

	NameTaken(
		ctx context.Context,
		name string,
		excludeID uint,
	) (bool, error)

	// CreateAreaWithSlots persists the area and its whole grid in one
	// transaction; on any failure nothing is kept.
	CreateAreaWithSlots(
		ctx context.Context,
		a *models.Area,
		slots []models.TimeSlot,
	) error

	DeleteArea(
		ctx context.Context,
		id uint,
	) error

	// -------- Postcode --------
	CountPostcodes(
		ctx context.Context,
		areaID uint,
	) (int64, error)

	// -------- TimeSlot --------
	GetSlotForArea(
		ctx context.Context,
		areaID uint,
		slotID uint,
	) (*models.TimeSlot, error)

	SetSlotActive(
		ctx context.Context,
		slot *models.TimeSlot,
		active bool,
	) error

	// SetDayActive flips every slot of one weekday for the area and
	// reports how many rows changed. Zero is not an error.
	SetDayActive(
		ctx context.Context,
		areaID uint,
		day int,
		active bool,
	) (int64, error)
}
