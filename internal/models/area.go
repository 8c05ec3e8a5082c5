package models

import "time"

type Area struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`

	Postcodes []Postcode `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"postcodes,omitempty"`
	TimeSlots []TimeSlot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"time_slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
