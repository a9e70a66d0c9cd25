package services_test

import (
	"testing"

	"cosign/internal/models"
	"cosign/internal/repositories"
	"cosign/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockCartRepository, *repositories.MockItemRepository) {
	t.Helper()
	cartRepo := repositories.NewMockCartRepository()
	itemRepo := repositories.NewMockItemRepository()
	assert.NoError(t, itemRepo.Create(&models.Item{
		ID:    "item-1",
		Title: "Retro Windbreaker",
		Price: 750,
	}))
	return services.NewCartService(cartRepo, itemRepo), cartRepo, itemRepo
}

func TestCartService_AddToCart(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	// First add creates a fresh entry with quantity 1
	ci, err := svc.AddToCart("user-1", "item-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, ci.Quantity)
	assert.Equal(t, "user-1", ci.UserID)

	// Re-adding the same item increments instead of duplicating
	ci2, err := svc.AddToCart("user-1", "item-1")
	assert.NoError(t, err)
	assert.Equal(t, ci.ID, ci2.ID)
	assert.Equal(t, 2, ci2.Quantity)

	cart, err := svc.GetCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, cart, 1)
}

func TestCartService_AddToCart_UnknownItem(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	_, err := svc.AddToCart("user-1", "no-such-item")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartService_AddToCart_RequiresSession(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	_, err := svc.AddToCart("", "item-1")
	assert.ErrorIs(t, err, services.ErrUnauthenticated)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	svc, cartRepo, _ := newCartFixture(t)

	ci, err := svc.AddToCart("user-1", "item-1")
	assert.NoError(t, err)

	// A different user cannot remove someone else's cart entry
	err = svc.RemoveFromCart("user-2", ci.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)
	stillThere, _ := cartRepo.GetByID(ci.ID)
	assert.NotNil(t, stillThere)

	// The owner can
	err = svc.RemoveFromCart("user-1", ci.ID)
	assert.NoError(t, err)
	cart, _ := svc.GetCart("user-1")
	assert.Empty(t, cart)
}
