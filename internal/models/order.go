package models

import "time"

// OrderItem is a denormalized snapshot of a catalog item at purchase time.
// It deliberately carries no reference to the live Item so that later edits
// or deletion of the catalog entry never alter order history.
type OrderItem struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID     string    `json:"order_id" gorm:"type:varchar(36);index"`
	Title       string    `json:"title" gorm:"type:varchar(255)"`
	Description string    `json:"description" gorm:"type:text"`
	Image       string    `json:"image" gorm:"type:varchar(512)"`
	LargeImage  string    `json:"large_image" gorm:"type:varchar(512)"`
	Price       int64     `json:"price"` // Price at the time of order
	Quantity    int       `json:"quantity"`
	UserID      string    `json:"user_id" gorm:"type:varchar(36);index"`
	CreatedAt   time.Time `json:"created_at"`
}

// Order is the immutable record of a completed purchase. Total is the amount
// the payment processor actually settled, and Charge is the processor's
// charge identifier.
type Order struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string      `json:"user_id" gorm:"type:varchar(36);index"`
	Charge    string      `json:"charge" gorm:"type:varchar(255)"`
	Total     int64       `json:"total"`
	Items     []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewOrderItemFromCart copies a cart entry's item fields into a detached
// snapshot. The snapshot gets its own identity; the source item's ID is
// intentionally not carried over.
func NewOrderItemFromCart(ci CartItem) OrderItem {
	return OrderItem{
		Title:       ci.Item.Title,
		Description: ci.Item.Description,
		Image:       ci.Item.Image,
		LargeImage:  ci.Item.LargeImage,
		Price:       ci.Item.Price,
		Quantity:    ci.Quantity,
		UserID:      ci.UserID,
	}
}
