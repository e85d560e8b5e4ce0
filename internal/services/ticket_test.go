package services

import (
	"testing"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) GetByID(id int) (*models.Ticket, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) ListByPurchaser(email string) ([]*models.Ticket, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Ticket), args.Error(1)
}

func (m *MockTicketRepository) List(limit, offset int) ([]*models.Ticket, int, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Ticket), args.Int(1), args.Error(2)
}

func TestTicketService_GetTicketByID(t *testing.T) {
	ticket := &models.Ticket{ID: 1, Code: "ABC-123", Purchaser: "owner@example.com"}

	tests := []struct {
		name          string
		user          *models.User
		expectedError error
	}{
		{
			name: "purchaser reads their own ticket",
			user: &models.User{ID: 1, Email: "owner@example.com", Role: models.RoleUser},
		},
		{
			name: "purchaser email comparison is case-insensitive",
			user: &models.User{ID: 1, Email: "Owner@Example.COM", Role: models.RoleUser},
		},
		{
			name: "admin reads any ticket",
			user: &models.User{ID: 9, Email: "admin@example.com", Role: models.RoleAdmin},
		},
		{
			name:          "stranger is forbidden",
			user:          &models.User{ID: 2, Email: "other@example.com", Role: models.RoleUser},
			expectedError: models.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockTicketRepository)
			service := NewTicketService(repo)

			repo.On("GetByID", 1).Return(ticket, nil)

			got, err := service.GetTicketByID(1, tt.user)

			if tt.expectedError != nil {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, ticket, got)
		})
	}
}

func TestTicketService_GetTickets(t *testing.T) {
	t.Run("admin listing is paginated", func(t *testing.T) {
		repo := new(MockTicketRepository)
		service := NewTicketService(repo)

		repo.On("List", 10, 0).Return([]*models.Ticket{{ID: 1}, {ID: 2}}, 25, nil)

		tickets, pagination, err := service.GetTickets(&models.User{Role: models.RoleAdmin}, 10, 0)

		require.NoError(t, err)
		assert.Len(t, tickets, 2)
		require.NotNil(t, pagination)
		assert.Equal(t, 25, pagination.Total)
		assert.Equal(t, 3, pagination.TotalPages)
	})

	t.Run("user sees only their own tickets", func(t *testing.T) {
		repo := new(MockTicketRepository)
		service := NewTicketService(repo)

		repo.On("ListByPurchaser", "user@example.com").Return([]*models.Ticket{{ID: 1}}, nil)

		tickets, pagination, err := service.GetTickets(&models.User{Email: "user@example.com", Role: models.RoleUser}, 10, 0)

		require.NoError(t, err)
		assert.Len(t, tickets, 1)
		assert.Nil(t, pagination)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}
