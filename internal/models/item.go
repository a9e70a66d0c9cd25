package models

import "gorm.io/gorm"

// Item represents a catalog entry in the store. Price is in minor currency
// units (cents), never floating point.
type Item struct {
	ID          string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title       string `json:"title" gorm:"type:varchar(255)" validate:"required,min=3,max=255"`
	Description string `json:"description" gorm:"type:text" validate:"omitempty,max=2000"`
	Image       string `json:"image" gorm:"type:varchar(512)" validate:"omitempty,url"`
	LargeImage  string `json:"large_image" gorm:"type:varchar(512)" validate:"omitempty,url"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	UserID      string `json:"user_id" gorm:"type:varchar(36);index"` // creator
	gorm.Model  `json:"-"`
}
