package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRequest_Validate(t *testing.T) {
	tests := []struct {
		name          string
		request       ProductRequest
		expectError   bool
		expectedField string
	}{
		{
			name:        "Valid product",
			request:     ProductRequest{Name: "Widget", Description: "A widget", Price: decimal.NewFromFloat(9.99), Stock: 5},
			expectError: false,
		},
		{
			name:          "Negative price",
			request:       ProductRequest{Name: "Widget", Price: decimal.NewFromInt(-1), Stock: 5},
			expectError:   true,
			expectedField: "price",
		},
		{
			name:          "Zero price",
			request:       ProductRequest{Name: "Widget", Price: decimal.Zero, Stock: 5},
			expectError:   true,
			expectedField: "price",
		},
		{
			name:          "Missing name",
			request:       ProductRequest{Price: decimal.NewFromInt(10), Stock: 5},
			expectError:   true,
			expectedField: "name",
		},
		{
			name:          "Negative stock",
			request:       ProductRequest{Name: "Widget", Price: decimal.NewFromInt(10), Stock: -1},
			expectError:   true,
			expectedField: "stock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			fields := make([]string, len(errs))
			for i, fe := range errs {
				fields[i] = fe.Field
			}
			assert.Contains(t, fields, tt.expectedField)
		})
	}
}

func TestOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		request     OrderRequest
		expectError bool
	}{
		{
			name:        "Valid order",
			request:     OrderRequest{Status: OrderStatusPending, Items: []OrderItemRequest{{ProductID: 1, Quantity: 2}}},
			expectError: false,
		},
		{
			name:        "Unknown status",
			request:     OrderRequest{Status: "shipped", Items: []OrderItemRequest{{ProductID: 1, Quantity: 2}}},
			expectError: true,
		},
		{
			name:        "No items",
			request:     OrderRequest{Status: OrderStatusPending},
			expectError: true,
		},
		{
			name:        "Zero quantity",
			request:     OrderRequest{Status: OrderStatusPending, Items: []OrderItemRequest{{ProductID: 1, Quantity: 0}}},
			expectError: true,
		},
		{
			name:        "Missing product reference",
			request:     OrderRequest{Status: OrderStatusPending, Items: []OrderItemRequest{{Quantity: 1}}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewOrderResponse(t *testing.T) {
	productA := Product{ID: 1, Name: "Croissant", Price: decimal.NewFromFloat(2.50)}
	productB := Product{ID: 2, Name: "Baguette", Price: decimal.NewFromFloat(4.00)}
	products := map[int64]Product{1: productA, 2: productB}

	order := Order{ID: uuid.New(), UserID: uuid.New(), Status: OrderStatusPending}
	items := []OrderItem{
		{OrderID: order.ID, ProductID: 1, Quantity: 3},
		{OrderID: order.ID, ProductID: 2, Quantity: 2},
	}

	resp := NewOrderResponse(order, items, products)

	require.Len(t, resp.Items, 2)
	assert.Equal(t, "Croissant", resp.Items[0].ProductName)
	assert.True(t, resp.Items[0].ItemSubtotal.Equal(decimal.NewFromFloat(7.50)),
		"subtotal was %s", resp.Items[0].ItemSubtotal)
	assert.True(t, resp.Items[1].ItemSubtotal.Equal(decimal.NewFromFloat(8.00)),
		"subtotal was %s", resp.Items[1].ItemSubtotal)
	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromFloat(15.50)),
		"total was %s", resp.TotalPrice)
	assert.Equal(t, order.UserID, resp.User)
}

func TestNewOrderResponse_Empty(t *testing.T) {
	order := Order{ID: uuid.New(), Status: OrderStatusPending}

	resp := NewOrderResponse(order, nil, nil)

	assert.Empty(t, resp.Items)
	assert.True(t, resp.TotalPrice.IsZero())
}

func TestNewProductInfoResponse(t *testing.T) {
	t.Run("Max price across products", func(t *testing.T) {
		products := []Product{
			{ID: 1, Name: "A", Price: decimal.NewFromInt(5)},
			{ID: 2, Name: "B", Price: decimal.NewFromInt(15)},
			{ID: 3, Name: "C", Price: decimal.NewFromInt(10)},
		}

		info := NewProductInfoResponse(products)

		assert.Equal(t, 3, info.Count)
		require.NotNil(t, info.MaxPrice)
		assert.True(t, info.MaxPrice.Equal(decimal.NewFromInt(15)))
		assert.Len(t, info.Products, 3)
	})

	t.Run("Empty catalogue has nil max price", func(t *testing.T) {
		info := NewProductInfoResponse(nil)

		assert.Equal(t, 0, info.Count)
		assert.Nil(t, info.MaxPrice)
	})
}

func TestNewUserResponse(t *testing.T) {
	user := User{ID: uuid.New(), Username: "alice", FullName: "Alice Smith", Role: RoleCustomer}
	orderA := Order{ID: uuid.New(), UserID: user.ID}
	orderB := Order{ID: uuid.New(), UserID: user.ID}
	products := map[int64]Product{1: {ID: 1, Name: "Croissant"}}
	itemsByOrder := map[uuid.UUID][]OrderItem{
		orderA.ID: {{OrderID: orderA.ID, ProductID: 1, Quantity: 1}},
	}

	resp := NewUserResponse(user, []Order{orderA, orderB}, itemsByOrder, products)

	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "Alice Smith", resp.FullName)
	assert.True(t, resp.Authenticated)
	assert.Equal(t, 2, resp.TotalOrders)
	require.Len(t, resp.Orders, 2)
	require.Len(t, resp.Orders[0].Items, 1)
	assert.Equal(t, "Croissant", resp.Orders[0].Items[0].ProductName)
	assert.Empty(t, resp.Orders[1].Items)
}
