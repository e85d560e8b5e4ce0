package models

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Ticket is the immutable record of a completed (partial or full) purchase
type Ticket struct {
	ID               int          `json:"id" db:"id"`
	Code             string       `json:"code" db:"code"`
	PurchaseDatetime time.Time    `json:"purchase_datetime" db:"purchase_datetime"`
	Amount           int          `json:"amount" db:"amount"` // Amount in cents
	Purchaser        string       `json:"purchaser" db:"purchaser"`
	Items            []TicketItem `json:"products"`
	CreatedAt        time.Time    `json:"created_at" db:"created_at"`
}

// TicketItem is one purchased line. Price is snapshotted at purchase time.
type TicketItem struct {
	ProductID int `json:"product_id" db:"product_id"`
	Quantity  int `json:"quantity" db:"quantity"`
	Price     int `json:"price" db:"price"` // Unit price in cents at purchase time
}

const ticketCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateTicketCode builds a ticket code of the form
// <base36 millisecond timestamp>-<6 base36 random chars>, uppercased.
// Uniqueness is enforced by the store; collisions are retried there.
func GenerateTicketCode() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	suffix := make([]byte, 6)
	max := big.NewInt(int64(len(ticketCodeAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			suffix[i] = ticketCodeAlphabet[time.Now().UnixNano()%36]
			continue
		}
		suffix[i] = ticketCodeAlphabet[n.Int64()]
	}

	return strings.ToUpper(ts + "-" + string(suffix))
}

// Validate checks the ticket invariants before persistence
func (t *Ticket) Validate() error {
	if t.Code == "" {
		return errors.New("ticket code is required")
	}

	if t.Purchaser == "" {
		return errors.New("purchaser email is required")
	}

	if t.Amount < 0 {
		return errors.New("amount cannot be negative")
	}

	if len(t.Items) == 0 {
		return errors.New("ticket must contain at least one line")
	}

	var sum int
	for _, item := range t.Items {
		if item.Quantity < 1 {
			return errors.New("ticket line quantity must be at least 1")
		}
		if item.Price < 0 {
			return errors.New("ticket line price cannot be negative")
		}
		sum += item.Price * item.Quantity
	}

	if sum != t.Amount {
		return errors.New("ticket amount does not match the sum of its lines")
	}

	return nil
}
