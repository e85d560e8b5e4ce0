package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

// TicketHandler serves the ticket read endpoints
type TicketHandler struct {
	ticketService *services.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// List handles GET /api/tickets: the caller's own tickets, or all tickets
// with pagination for admins
func (h *TicketHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	tickets, pagination, err := h.ticketService.GetTickets(user, limit, (page-1)*limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	data := gin.H{"tickets": tickets}
	if pagination != nil {
		data["pagination"] = pagination
	}

	respondSuccess(c, http.StatusOK, "tickets retrieved", data)
}

// Get handles GET /api/tickets/:id (owner or admin)
func (h *TicketHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid ticket id")
		return
	}

	ticket, err := h.ticketService.GetTicketByID(id, user)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "ticket retrieved", ticket)
}
