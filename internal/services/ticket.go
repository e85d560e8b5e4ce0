package services

import (
	"storefront/internal/models"
)

// TicketService handles ticket read access. Tickets are immutable, so the
// service only exposes queries; creation happens inside settlement.
type TicketService struct {
	ticketRepo TicketRepository
}

// TicketRepository interface for ticket read operations
type TicketRepository interface {
	GetByID(id int) (*models.Ticket, error)
	ListByPurchaser(email string) ([]*models.Ticket, error)
	List(limit, offset int) ([]*models.Ticket, int, error)
}

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo TicketRepository) *TicketService {
	return &TicketService{ticketRepo: ticketRepo}
}

// GetTicketByID fetches one ticket; non-admins may only read their own
func (s *TicketService) GetTicketByID(id int, requestingUser *models.User) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !requestingUser.IsAdmin() && ticket.Purchaser != NormalizeEmail(requestingUser.Email) {
		return nil, models.ErrForbidden
	}

	return ticket, nil
}

// GetTickets lists the caller's own tickets; admins get all tickets with
// pagination instead
func (s *TicketService) GetTickets(requestingUser *models.User, limit, offset int) ([]*models.Ticket, *Pagination, error) {
	if requestingUser.IsAdmin() {
		tickets, total, err := s.ticketRepo.List(limit, offset)
		if err != nil {
			return nil, nil, err
		}
		return tickets, NewPagination(limit, offset, total), nil
	}

	tickets, err := s.ticketRepo.ListByPurchaser(requestingUser.Email)
	if err != nil {
		return nil, nil, err
	}
	return tickets, nil, nil
}
