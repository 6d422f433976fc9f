package reports

import (
	"testing"
	"time"

	"github.com/hariharanp05/eaclothingfrontend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id int, name, email, phone, status, total string, created time.Time) models.Order {
	return models.Order{
		ID:           id,
		CustomerName: name,
		Email:        email,
		Phone:        phone,
		OrderStatus:  status,
		FinalTotal:   decimal.RequireFromString(total),
		CreatedAt:    models.APITime{Time: created},
	}
}

func TestComputeStats(t *testing.T) {
	products := []models.Product{{ID: 1}, {ID: 2}, {ID: 3}}
	orders := []models.Order{
		{OrderStatus: models.OrderStatusPending},
		{OrderStatus: models.OrderStatusPending},
		{OrderStatus: models.OrderStatusDelivered},
	}

	stats := ComputeStats(products, orders)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 2, stats.OrdersByStatus[models.OrderStatusPending])
	assert.Equal(t, 1, stats.OrdersByStatus[models.OrderStatusDelivered])
}

func TestCustomerSummariesGroupsByEmailAndPhone(t *testing.T) {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	orders := []models.Order{
		order(1, "Asha Rao", "asha@example.com", "111", "pending", "108", mar),
		order(2, "Binu K", "binu@example.com", "222", "delivered", "43.2", jan),
		order(3, "Asha Rao", "asha@example.com", "111", "delivered", "50", jan),
		// Same email, different phone: distinct customer.
		order(4, "Asha Rao", "asha@example.com", "999", "pending", "20", mar),
	}

	summaries := CustomerSummaries(orders)
	require.Len(t, summaries, 3)

	// Sorted by name; the two Asha entries keep insertion-independent keys.
	assert.Equal(t, "Asha Rao", summaries[0].Name)
	assert.Equal(t, "Binu K", summaries[2].Name)

	var asha *CustomerSummary
	for i := range summaries {
		if summaries[i].Phone == "111" {
			asha = &summaries[i]
		}
	}
	require.NotNil(t, asha)
	assert.Equal(t, 2, asha.OrdersCount())
	assert.Equal(t, []int{1, 3}, asha.OrderIDs)
	assert.Equal(t, "158", asha.TotalSpent.String())
	assert.Equal(t, jan, asha.FirstOrder) // earliest order wins
}

func TestSearchOrders(t *testing.T) {
	orders := []models.Order{
		order(12, "Asha Rao", "asha@example.com", "111", "pending", "10", time.Time{}),
		order(34, "Binu K", "binu@example.com", "222", "pending", "10", time.Time{}),
	}
	orders[1].Items = []models.OrderItem{{ProductName: "Linen Shirt"}}

	assert.Len(t, SearchOrders(orders, ""), 2)
	assert.Equal(t, 12, SearchOrders(orders, "asha")[0].ID)
	assert.Equal(t, 34, SearchOrders(orders, "linen")[0].ID)
	assert.Equal(t, 34, SearchOrders(orders, "34")[0].ID)
	assert.Empty(t, SearchOrders(orders, "zzz"))
}

func TestSearchProducts(t *testing.T) {
	collections := []models.Collection{{ID: 7, Name: "Summer", Slug: "summer"}}
	products := []models.Product{
		{ID: 1, Name: "Linen Shirt", Category: "shirts", CollectionID: 7},
		{ID: 2, Name: "Denim Jacket", Category: "jackets"},
	}

	assert.Len(t, SearchProducts(products, collections, " "), 2)
	assert.Equal(t, 1, SearchProducts(products, collections, "summer")[0].ID)
	assert.Equal(t, 2, SearchProducts(products, collections, "denim")[0].ID)
}

func TestSearchCustomers(t *testing.T) {
	customers := []CustomerSummary{
		{Name: "Asha Rao", Email: "asha@example.com", Phone: "111"},
		{Name: "Binu K", Email: "binu@example.com", Phone: "222"},
	}

	assert.Len(t, SearchCustomers(customers, ""), 2)
	assert.Equal(t, "Binu K", SearchCustomers(customers, "222")[0].Name)
	assert.Empty(t, SearchCustomers(customers, "zzz"))
}
