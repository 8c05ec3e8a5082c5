package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/LaundryServices01/laundry-admin/internal/models"
)

type AreaGormRepository struct {
	db *gorm.DB
}

func NewAreaGormRepository(db *gorm.DB) *AreaGormRepository {
	return &AreaGormRepository{db: db}
}

// --------------------------------------------------
// Area
// --------------------------------------------------

func (r *AreaGormRepository) GetAreaByID(
	ctx context.Context,
	id uint,
) (*models.Area, error) {

	var a models.Area
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AreaGormRepository) NameTaken(
	ctx context.Context,
	name string,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Area{}).
		Where("LOWER(name) = LOWER(?)", name)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AreaGormRepository) CreateAreaWithSlots(
	ctx context.Context,
	a *models.Area,
	slots []models.TimeSlot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}

		for i := range slots {
			slots[i].AreaID = a.ID
		}

		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}

		a.TimeSlots = slots
		return nil
	})
}

func (r *AreaGormRepository) DeleteArea(
	ctx context.Context,
	id uint,
) error {

	// The slot grid goes with the area; the FK cascade covers databases
	// created outside AutoMigrate as well.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("area_id = ?", id).Delete(&models.TimeSlot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Area{}, id).Error
	})
}

// --------------------------------------------------
// Postcode
// --------------------------------------------------

func (r *AreaGormRepository) CountPostcodes(
	ctx context.Context,
	areaID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Postcode{}).
		Where("area_id = ?", areaID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// TimeSlot
// --------------------------------------------------

func (r *AreaGormRepository) GetSlotForArea(
	ctx context.Context,
	areaID uint,
	slotID uint,
) (*models.TimeSlot, error) {

	var slot models.TimeSlot
	if err := r.db.WithContext(ctx).
		Where("id = ? AND area_id = ?", slotID, areaID).
		First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *AreaGormRepository) SetSlotActive(
	ctx context.Context,
	slot *models.TimeSlot,
	active bool,
) error {

	slot.IsActive = active
	return r.db.WithContext(ctx).
		Model(slot).
		Update("is_active", active).Error
}

func (r *AreaGormRepository) SetDayActive(
	ctx context.Context,
	areaID uint,
	day int,
	active bool,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.TimeSlot{}).
		Where("area_id = ? AND day_of_week = ?", areaID, day).
		Update("is_active", active)

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
