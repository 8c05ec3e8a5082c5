package models

import "time"

// Postcode is stored uppercased and is unique across all areas.
type Postcode struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Postcode string `gorm:"size:20;uniqueIndex;not null" json:"postcode"`

	AreaID uint `json:"area"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
