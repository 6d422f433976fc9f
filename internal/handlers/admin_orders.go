package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/hariharanp05/eaclothingfrontend/internal/models"
	"github.com/hariharanp05/eaclothingfrontend/internal/reports"
)

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Backend.Orders(r.Context())
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query().Get("q")
	filtered := reports.SearchOrders(orders, query)

	tmpl := h.Templates.Get("admin_orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Orders":    filtered,
		"Query":     query,
		"Statuses":  []string{models.OrderStatusPending, models.OrderStatusProcessing, models.OrderStatusDelivered, models.OrderStatusCancelled},
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateOrderStatus forwards a status change to the backend. Only the four
// enumerated statuses pass validation.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSessionName)
	defer session.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	status := r.FormValue("order_status")
	if !models.ValidOrderStatus(status) {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid order status."})
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	if err := h.Backend.UpdateOrderStatus(r.Context(), id, status); err != nil {
		slog.Error("Order status update failed", "id", id, "status", status, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating status."})
		http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Order updated!"})
	http.Redirect(w, r, "/admin/orders", http.StatusSeeOther)
}

// ListCustomers renders the summaries grouped from the order list; the
// backend has no customer table of its own.
func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Backend.Orders(r.Context())
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	query := r.URL.Query().Get("q")
	customers := reports.SearchCustomers(reports.CustomerSummaries(orders), query)

	tmpl := h.Templates.Get("admin_customers.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, adminSessionName)
	data := map[string]interface{}{
		"Customers": customers,
		"Query":     query,
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
