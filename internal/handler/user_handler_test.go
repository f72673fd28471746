package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserHandler_List(t *testing.T) {
	users := []model.UserResponse{
		{
			Username:      "alice",
			Role:          model.RoleCustomer,
			Authenticated: true,
			FullName:      "Alice Smith",
			Orders: []model.UserOrderResponse{
				{ID: uuid.New(), Items: []model.UserOrderItemResponse{{ProductName: "Keyboard"}}},
			},
			TotalOrders: 1,
		},
	}

	tests := []struct {
		name           string
		method         string
		mockReturn     []model.UserResponse
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			method:         http.MethodGet,
			mockReturn:     users,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Service error",
			method:         http.MethodGet,
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectService:  true,
		},
		{
			name:           "Method not allowed",
			method:         http.MethodPost,
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockUserService)
			handler := NewUserHandler(mockService, zerolog.Nop())

			if tt.expectService {
				mockService.On("List", mock.Anything).Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(tt.method, "/api/users", nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestUserHandler_List_Body(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewUserHandler(mockService, zerolog.Nop())

	mockService.On("List", mock.Anything).Return([]model.UserResponse{
		{Username: "bob", Role: model.RoleCustomer, Authenticated: true, Orders: []model.UserOrderResponse{}, TotalOrders: 0},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "bob", resp[0]["username"])
	assert.Equal(t, true, resp[0]["is_authenticated"])
	assert.Equal(t, float64(0), resp[0]["total_orders"])
}
