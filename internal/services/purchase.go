package services

import (
	"fmt"
	"time"

	"storefront/internal/models"
)

// PurchaseService runs the purchase settlement workflow: it converts the
// satisfiable lines of a user's cart into one ticket, decrements stock, and
// leaves the unsatisfiable lines behind in the cart.
type PurchaseService struct {
	cartRepo    CartStore
	productRepo ProductStore
	ticketRepo  TicketStore
}

// CartStore is the cart access the settlement workflow needs
type CartStore interface {
	GetByUser(userID int) (*models.Cart, error)
	ReplaceItems(cartID int, items []models.CartItem) error
	Clear(cartID int) error
}

// ProductStore is the catalog access the settlement workflow needs.
// DecrementStock must be atomic: it decrements only when enough stock is
// available and returns models.ErrInsufficientStock otherwise.
type ProductStore interface {
	GetByID(id int) (*models.Product, error)
	DecrementStock(id, quantity int) error
}

// TicketStore is the append-only ticket log
type TicketStore interface {
	Create(ticket *models.Ticket) (*models.Ticket, error)
}

// UnavailableItem describes a cart line that could not be settled
type UnavailableItem struct {
	ProductID      int    `json:"product_id"`
	Quantity       int    `json:"quantity"`
	AvailableStock *int   `json:"available_stock,omitempty"`
	Reason         string `json:"reason"`
}

// SettlementResult is the outcome of one settlement call
type SettlementResult struct {
	Ticket      *models.Ticket    `json:"ticket"`
	Unavailable []UnavailableItem `json:"unavailableProducts"`
	Message     string            `json:"message"`
}

// FullySettled returns true if every cart line was converted into the ticket
func (r *SettlementResult) FullySettled() bool {
	return len(r.Unavailable) == 0
}

const (
	msgFullySettled     = "purchase fully settled"
	msgPartiallySettled = "purchase partially settled; some products were unavailable"
)

// NewPurchaseService creates a new purchase service
func NewPurchaseService(cartRepo CartStore, productRepo ProductStore, ticketRepo TicketStore) *PurchaseService {
	return &PurchaseService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		ticketRepo:  ticketRepo,
	}
}

// Settle runs the settlement workflow for the user's cart.
//
// Lines are evaluated independently and strictly in cart order: a line that
// cannot be settled never blocks the rest of the cart. Stock is taken through
// the store's conditional decrement, so a concurrent settlement can turn a
// line unavailable between the product read and the decrement, but stock can
// never go negative. Earlier decrements are not rolled back when a later
// store call fails; that best-effort model is deliberate.
func (s *PurchaseService) Settle(userID int, purchaserEmail string) (*SettlementResult, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		if err == models.ErrCartNotFound {
			return nil, models.ErrEmptyCart
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	var settled []models.TicketItem
	var unavailable []UnavailableItem
	amount := 0

	for _, line := range cart.Items {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			if err == models.ErrProductNotFound {
				unavailable = append(unavailable, UnavailableItem{
					ProductID: line.ProductID,
					Quantity:  line.Quantity,
					Reason:    "product not found",
				})
				continue
			}
			return nil, fmt.Errorf("failed to load product %d: %w", line.ProductID, err)
		}

		err = s.productRepo.DecrementStock(product.ID, line.Quantity)
		if err != nil {
			if err == models.ErrInsufficientStock {
				available := product.Stock
				unavailable = append(unavailable, UnavailableItem{
					ProductID:      product.ID,
					Quantity:       line.Quantity,
					AvailableStock: &available,
					Reason:         "insufficient stock",
				})
				continue
			}
			return nil, fmt.Errorf("failed to decrement stock for product %d: %w", product.ID, err)
		}

		// Price is captured at this moment so the ticket stays correct
		// even if the catalog price changes later.
		settled = append(settled, models.TicketItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
		amount += product.Price * line.Quantity
	}

	var ticket *models.Ticket
	if len(settled) > 0 {
		ticket, err = s.createTicket(settled, amount, purchaserEmail)
		if err != nil {
			return nil, err
		}
	}

	if len(unavailable) > 0 {
		leftover := make([]models.CartItem, 0, len(unavailable))
		for _, item := range unavailable {
			leftover = append(leftover, models.CartItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
		if err := s.cartRepo.ReplaceItems(cart.ID, leftover); err != nil {
			return nil, fmt.Errorf("failed to rewrite cart: %w", err)
		}
	} else {
		if err := s.cartRepo.Clear(cart.ID); err != nil {
			return nil, fmt.Errorf("failed to clear cart: %w", err)
		}
	}

	message := msgFullySettled
	if len(unavailable) > 0 {
		message = msgPartiallySettled
	}

	return &SettlementResult{
		Ticket:      ticket,
		Unavailable: unavailable,
		Message:     message,
	}, nil
}

// createTicket persists the settled lines as one ticket, regenerating the
// code on the (negligible-probability) unique collision.
func (s *PurchaseService) createTicket(items []models.TicketItem, amount int, purchaser string) (*models.Ticket, error) {
	const maxAttempts = 3

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		ticket := &models.Ticket{
			Code:             models.GenerateTicketCode(),
			PurchaseDatetime: time.Now().UTC(),
			Amount:           amount,
			Purchaser:        purchaser,
			Items:            items,
		}

		created, err := s.ticketRepo.Create(ticket)
		if err == nil {
			return created, nil
		}
		if err != models.ErrDuplicateTicketCode {
			return nil, fmt.Errorf("failed to create ticket: %w", err)
		}
		lastErr = err
	}

	return nil, fmt.Errorf("failed to create ticket after %d attempts: %w", maxAttempts, lastErr)
}
