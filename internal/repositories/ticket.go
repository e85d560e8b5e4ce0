package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"storefront/internal/models"
)

// TicketRepository handles purchase ticket data operations.
// Tickets are append-only: there are no update or delete methods.
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create persists a ticket and its lines in one transaction
func (r *TicketRepository) Create(ticket *models.Ticket) (*models.Ticket, error) {
	if err := ticket.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO tickets (code, purchase_datetime, amount, purchaser, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		ticket.Code,
		ticket.PurchaseDatetime.UTC(),
		ticket.Amount,
		strings.ToLower(strings.TrimSpace(ticket.Purchaser)),
		time.Now().UTC(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: tickets.code") {
			return nil, models.ErrDuplicateTicketCode
		}
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted ticket id: %w", err)
	}

	for _, item := range ticket.Items {
		if _, err := tx.Exec(
			"INSERT INTO ticket_items (ticket_id, product_id, quantity, price) VALUES (?, ?, ?, ?)",
			id, item.ProductID, item.Quantity, item.Price,
		); err != nil {
			return nil, fmt.Errorf("failed to insert ticket line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ticket: %w", err)
	}

	return r.GetByID(int(id))
}

// GetByID retrieves a ticket with its lines
func (r *TicketRepository) GetByID(id int) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	err := r.db.QueryRow(`
		SELECT id, code, purchase_datetime, amount, purchaser, created_at
		FROM tickets
		WHERE id = ?`, id).Scan(
		&ticket.ID,
		&ticket.Code,
		&ticket.PurchaseDatetime,
		&ticket.Amount,
		&ticket.Purchaser,
		&ticket.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	items, err := r.loadItems(ticket.ID)
	if err != nil {
		return nil, err
	}
	ticket.Items = items

	return ticket, nil
}

// ListByPurchaser retrieves all tickets belonging to a purchaser email,
// newest first
func (r *TicketRepository) ListByPurchaser(email string) ([]*models.Ticket, error) {
	rows, err := r.db.Query(`
		SELECT id, code, purchase_datetime, amount, purchaser, created_at
		FROM tickets
		WHERE purchaser = ?
		ORDER BY purchase_datetime DESC`,
		strings.ToLower(strings.TrimSpace(email)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets by purchaser: %w", err)
	}
	defer rows.Close()

	return r.collectTickets(rows)
}

// List retrieves tickets newest first with pagination, plus the total count
func (r *TicketRepository) List(limit, offset int) ([]*models.Ticket, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM tickets").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT id, code, purchase_datetime, amount, purchaser, created_at
		FROM tickets
		ORDER BY purchase_datetime DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	tickets, err := r.collectTickets(rows)
	if err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

func (r *TicketRepository) collectTickets(rows *sql.Rows) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	for rows.Next() {
		ticket := &models.Ticket{}
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Code,
			&ticket.PurchaseDatetime,
			&ticket.Amount,
			&ticket.Purchaser,
			&ticket.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tickets: %w", err)
	}

	for _, ticket := range tickets {
		items, err := r.loadItems(ticket.ID)
		if err != nil {
			return nil, err
		}
		ticket.Items = items
	}

	return tickets, nil
}

func (r *TicketRepository) loadItems(ticketID int) ([]models.TicketItem, error) {
	rows, err := r.db.Query(`
		SELECT product_id, quantity, price
		FROM ticket_items
		WHERE ticket_id = ?
		ORDER BY id ASC`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket items: %w", err)
	}
	defer rows.Close()

	var items []models.TicketItem
	for rows.Next() {
		var item models.TicketItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan ticket item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket items: %w", err)
	}

	return items, nil
}
