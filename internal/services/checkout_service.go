package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"cosign/internal/models"
	"cosign/internal/payments"
	"cosign/internal/repositories"
	"cosign/pkg/mailer"
	"cosign/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderEventPublisher publishes order lifecycle events. Satisfied by
// *rabbitmq.Client.
type OrderEventPublisher interface {
	PublishOrderCreated(event rabbitmq.OrderCreatedEvent) error
}

// userLocks hands out one mutex per user id so that checkouts for the same
// user run strictly one at a time. Locks are never evicted; the map grows
// with the number of distinct users that ever checked out in this process.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *userLocks) get(userID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[userID] = lock
	}
	return lock
}

// CheckoutService converts a user's cart into an immutable order: it
// recomputes the total server-side, charges the payment processor, persists
// the order together with the cart clear, and notifies downstream consumers.
type CheckoutService struct {
	userRepo  repositories.UserRepository
	cartRepo  repositories.CartRepository
	orderRepo repositories.OrderRepository
	charger   payments.Charger
	events    OrderEventPublisher
	mail      Sender
	currency  string
	locks     *userLocks
}

// NewCheckoutService creates a new CheckoutService. events and mail may be
// nil; both are best-effort side channels.
func NewCheckoutService(
	userRepo repositories.UserRepository,
	cartRepo repositories.CartRepository,
	orderRepo repositories.OrderRepository,
	charger payments.Charger,
	events OrderEventPublisher,
	mail Sender,
	currency string,
) *CheckoutService {
	return &CheckoutService{
		userRepo:  userRepo,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		charger:   charger,
		events:    events,
		mail:      mail,
		currency:  currency,
		locks:     newUserLocks(),
	}
}

// Checkout runs the full checkout flow for the signed-in user.
//
// The charge happens strictly before any persistence; a declined or failed
// charge leaves the cart and order store untouched. Order creation and cart
// clearing are a single repository transaction, so a successful charge
// yields exactly one order and an emptied cart, or a PersistenceFailed
// error carrying the charge id for reconciliation. The whole flow holds a
// per-user lock, so two concurrent checkouts for one user cannot both
// convert the same cart snapshot.
func (s *CheckoutService) Checkout(ctx context.Context, userID, paymentToken string) (*models.Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	lock := s.locks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	// 1. Load the cart with item fields.
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	// 2. Recompute the total server-side. Client-supplied totals are never
	// trusted.
	var amount int64
	for _, ci := range cart {
		amount += ci.Item.Price * int64(ci.Quantity)
	}
	log.Printf("Charging user %s a total of %d %s", userID, amount, s.currency)

	// 3. Charge the processor. This is the single irreversible external
	// side effect; the idempotency key scopes it to this attempt.
	idempotencyKey := uuid.New().String()
	charge, err := s.charger.Charge(ctx, amount, s.currency, paymentToken, idempotencyKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	// 4. Convert cart entries into detached order item snapshots.
	orderItems := make([]models.OrderItem, 0, len(cart))
	cartItemIDs := make([]string, 0, len(cart))
	for _, ci := range cart {
		orderItems = append(orderItems, models.NewOrderItemFromCart(ci))
		cartItemIDs = append(cartItemIDs, ci.ID)
	}

	// 5.-6. Persist the order and clear the cart atomically. The total is
	// the processor's settled amount, not the locally computed one.
	order := &models.Order{
		UserID: userID,
		Charge: charge.ID,
		Total:  charge.Amount,
		Items:  orderItems,
	}
	if err := s.orderRepo.CreateWithCartClear(order, cartItemIDs); err != nil {
		return nil, fmt.Errorf("%w (charge %s): %v", ErrPersistenceFailed, charge.ID, err)
	}

	s.notify(user, order)

	// 7. Return the created order.
	return order, nil
}

// notify publishes the order event and sends the confirmation email. Both
// are best-effort: the order is already durable, so failures here are
// logged, never surfaced.
func (s *CheckoutService) notify(user *models.User, order *models.Order) {
	if s.events != nil {
		event := rabbitmq.OrderCreatedEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			UserEmail: user.Email,
			Charge:    order.Charge,
			Total:     order.Total,
			ItemCount: len(order.Items),
			CreatedAt: order.CreatedAt,
		}
		if err := s.events.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}

	if s.mail != nil {
		body := mailer.NiceEmail(fmt.Sprintf(
			"Thanks for your order! Your order %s for a total of %d has been placed on %s.",
			order.ID, order.Total, order.CreatedAt.Format(time.RFC1123),
		))
		if err := s.mail.Send(user.Email, "Your Co-Sign Order Confirmation", body); err != nil {
			log.Printf("Warning: failed to send order confirmation for order %s: %v", order.ID, err)
		}
	}
}
