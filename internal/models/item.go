package models

import "time"

type Item struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CategoryID uint `gorm:"uniqueIndex:idx_category_item_name" json:"category"`

	Name        string `gorm:"size:255;uniqueIndex:idx_category_item_name;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	WashingPrice     float64 `gorm:"default:0" json:"washing_price"`
	DrycleaningPrice float64 `gorm:"default:0" json:"drycleaning_price"`
	Pieces           int     `gorm:"default:1" json:"pieces"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
