package service

import (
	"context"
	"log/slog"

	"github.com/listenupapp/library-client/internal/api"
	"github.com/listenupapp/library-client/internal/domain"
	"github.com/listenupapp/library-client/internal/errors"
	"github.com/listenupapp/library-client/internal/uistore"
)

// CheckoutService borrows the contents of the cart.
type CheckoutService struct {
	client *api.Client
	ui     *uistore.Store
	logger *slog.Logger
}

// NewCheckoutService creates a checkout service.
func NewCheckoutService(client *api.Client, ui *uistore.Store, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{client: client, ui: ui, logger: logger}
}

// Checkout borrows every cart item in the order it was added, one loan per
// requested copy. Borrowed items leave the cart as they succeed. The first
// failure stops checkout and is returned together with the loans made so far.
// On success the cart is empty and the drawer is closed.
func (s *CheckoutService) Checkout(ctx context.Context) ([]domain.Loan, error) {
	items := s.ui.Items()
	if len(items) == 0 {
		return nil, errors.Validation("cart is empty")
	}

	var loans []domain.Loan
	for _, item := range items {
		for borrowed := range item.Quantity {
			env, err := s.client.Loans.Borrow(ctx, item.Book.ID)
			if err != nil {
				if borrowed > 0 {
					s.ui.SetQuantity(item.Book.ID, item.Quantity-borrowed)
				}
				s.logger.Info("checkout stopped",
					"book_id", item.Book.ID,
					"loans", len(loans),
					"error", err,
				)
				return loans, err
			}
			loans = append(loans, *env.Data)
		}
		s.ui.RemoveItem(item.Book.ID)
	}

	s.ui.SetCartOpen(false)
	s.logger.Info("checkout complete", "loans", len(loans))
	return loans, nil
}
