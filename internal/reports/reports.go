// Package reports derives the admin dashboard figures from the lists the
// backend returns. Everything here is a pure recompute over the current
// snapshot; nothing is cached between requests.
package reports

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hariharanp05/eaclothingfrontend/internal/models"
	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalProducts  int
	TotalOrders    int
	OrdersByStatus map[string]int
}

func ComputeStats(products []models.Product, orders []models.Order) DashboardStats {
	stats := DashboardStats{
		TotalProducts:  len(products),
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[string]int),
	}
	for _, o := range orders {
		stats.OrdersByStatus[o.OrderStatus]++
	}
	return stats
}

// CustomerSummary groups a customer's orders. Customers have no account of
// their own on the backend, so (email, phone) stands in as identity.
type CustomerSummary struct {
	Key        string
	Name       string
	Email      string
	Phone      string
	OrderIDs   []int
	TotalSpent decimal.Decimal
	FirstOrder time.Time
}

func (c CustomerSummary) OrdersCount() int {
	return len(c.OrderIDs)
}

// CustomerSummaries folds orders into one summary per (email, phone) pair,
// sorted by customer name.
func CustomerSummaries(orders []models.Order) []CustomerSummary {
	byKey := make(map[string]*CustomerSummary)
	var keys []string

	for _, o := range orders {
		key := o.Email + "__" + o.Phone
		summary, ok := byKey[key]
		if !ok {
			summary = &CustomerSummary{
				Key:        key,
				Name:       o.CustomerName,
				Email:      o.Email,
				Phone:      o.Phone,
				TotalSpent: decimal.Zero,
			}
			byKey[key] = summary
			keys = append(keys, key)
		}
		summary.OrderIDs = append(summary.OrderIDs, o.ID)
		summary.TotalSpent = summary.TotalSpent.Add(o.FinalTotal)
		if !o.CreatedAt.IsZero() && (summary.FirstOrder.IsZero() || o.CreatedAt.Before(summary.FirstOrder)) {
			summary.FirstOrder = o.CreatedAt.Time
		}
	}

	summaries := make([]CustomerSummary, 0, len(keys))
	for _, key := range keys {
		summaries = append(summaries, *byKey[key])
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// SearchProducts filters by name, category or collection name. A blank
// query returns the input unchanged.
func SearchProducts(products []models.Product, collections []models.Collection, query string) []models.Product {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return products
	}
	names := make(map[int]string, len(collections))
	for _, c := range collections {
		names[c.ID] = c.Name
	}
	var out []models.Product
	for _, p := range products {
		if containsFold(p.Name, query) || containsFold(p.Category, query) || containsFold(names[p.CollectionID], query) {
			out = append(out, p)
		}
	}
	return out
}

// SearchOrders matches the id, customer contact fields, address parts and
// the names of ordered products.
func SearchOrders(orders []models.Order, query string) []models.Order {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return orders
	}
	var out []models.Order
	for _, o := range orders {
		if strings.Contains(strconv.Itoa(o.ID), query) ||
			containsFold(o.CustomerName, query) ||
			containsFold(o.Email, query) ||
			containsFold(o.Phone, query) ||
			containsFold(o.City, query) ||
			containsFold(o.State, query) ||
			containsFold(o.Pincode, query) ||
			orderItemsMatch(o.Items, query) {
			out = append(out, o)
		}
	}
	return out
}

func orderItemsMatch(items []models.OrderItem, query string) bool {
	for _, item := range items {
		if containsFold(item.ProductName, query) {
			return true
		}
	}
	return false
}

// SearchCustomers filters summaries by name, email or phone.
func SearchCustomers(customers []CustomerSummary, query string) []CustomerSummary {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return customers
	}
	var out []CustomerSummary
	for _, c := range customers {
		if containsFold(c.Name, query) || containsFold(c.Email, query) || containsFold(c.Phone, query) {
			out = append(out, c)
		}
	}
	return out
}
