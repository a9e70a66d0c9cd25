package models

import "gorm.io/gorm"

// CartItem is a user's pending selection of an item. It is transient: a
// successful checkout converts it into an OrderItem and deletes it.
// A user has at most one CartItem per catalog item; re-adding increments
// the quantity instead.
type CartItem struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string `json:"user_id" gorm:"type:varchar(36);index:idx_cart_user_item" validate:"required"`
	ItemID     string `json:"item_id" gorm:"type:varchar(36);index:idx_cart_user_item" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
	Item       Item   `json:"item" gorm:"foreignKey:ItemID"`
	gorm.Model `json:"-"`
}
