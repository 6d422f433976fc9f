package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/hariharanp05/eaclothingfrontend/internal/backend"
	"github.com/hariharanp05/eaclothingfrontend/internal/checkout"
	"github.com/hariharanp05/eaclothingfrontend/internal/models"
)

// CheckoutHandler drives the wizard. The checkout.Machine is rebuilt from
// the session on every request and written back after each transition.
type CheckoutHandler struct {
	Backend      *backend.Client
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Pricing      checkout.Pricing
}

var stepTemplates = map[checkout.Step]string{
	checkout.StepShipping: "checkout_shipping.html",
	checkout.StepPayment:  "checkout_payment.html",
	checkout.StepReview:   "checkout_review.html",
}

func (h *CheckoutHandler) machine(session *sessions.Session) *checkout.Machine {
	state, ok := checkoutFromSession(session)
	if !ok {
		state = checkout.NewState(uuid.New().String())
	}
	return &checkout.Machine{State: state, Pricing: h.Pricing, Placer: h.Backend}
}

// Show renders whichever step the session is on.
func (h *CheckoutHandler) Show(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	c := cartFromSession(session)
	if c.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	m := h.machine(session)
	saveCheckout(session, m.State)

	tmpl := h.Templates.Get(stepTemplates[m.State.Step])
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	user := userFromSession(session)
	shipping := m.State.Shipping
	if shipping.Email == "" && user != nil {
		// Pre-fill from the account profile on first entry.
		shipping = prefillShipping(user)
	}

	data := map[string]interface{}{
		"Cart":          c,
		"Totals":        h.Pricing.Quote(c.TotalPrice()),
		"Shipping":      shipping,
		"OrderID":       m.State.OrderID,
		"PaymentMethod": m.State.PaymentMethod,
		"CsrfField":     csrf.TemplateField(r),
		"Flashes":       GetFlash(session),
		"User":          user,
		"CartCount":     c.TotalItems(),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// SubmitShipping validates the address form and submits the draft order.
// A backend failure keeps the wizard on the shipping step with no order id
// retained, so the user can simply retry.
func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	defer session.Save(r, w)

	c := cartFromSession(session)
	if c.IsEmpty() {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	details := checkout.ShippingDetails{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Email:     r.FormValue("email"),
		Phone:     r.FormValue("phone"),
		Address:   r.FormValue("address"),
		City:      r.FormValue("city"),
		State:     r.FormValue("state"),
		ZipCode:   r.FormValue("zip_code"),
	}

	m := h.machine(session)
	err := m.SubmitShipping(r.Context(), &c, details)
	saveCheckout(session, m.State)

	var vErr *checkout.ValidationError
	switch {
	case errors.As(err, &vErr):
		session.AddFlash(FlashMessage{Type: "error", Message: "Please fill in all shipping fields."})
	case err != nil:
		slog.Error("Draft order submission failed", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not reach the order service. Please try again."})
	}
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	defer session.Save(r, w)

	m := h.machine(session)
	if err := m.SubmitPayment(checkout.PaymentMethod(r.FormValue("payment_method"))); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Please choose a payment method."})
	}
	saveCheckout(session, m.State)
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

// Back moves one step towards shipping, unconditionally.
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	defer session.Save(r, w)

	m := h.machine(session)
	m.Back()
	saveCheckout(session, m.State)
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

// Place finalizes the order: the cart is cleared, the wizard state is
// dropped and the confirmation page gets the retained order id.
func (h *CheckoutHandler) Place(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	defer session.Save(r, w)

	c := cartFromSession(session)
	m := h.machine(session)
	orderID, err := m.Finalize(&c)
	if err != nil {
		saveCheckout(session, m.State)
		session.AddFlash(FlashMessage{Type: "error", Message: "Please choose a payment method before placing the order."})
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	saveCart(session, c)
	clearCheckout(session)
	http.Redirect(w, r, "/order-confirmation?id="+strconv.Itoa(orderID), http.StatusSeeOther)
}

func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("confirmation.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, shopSessionName)
	data := map[string]interface{}{
		"OrderID":           r.URL.Query().Get("id"),
		"EstimatedDelivery": time.Now().AddDate(0, 0, 5).Format("January 2, 2006"),
		"Flashes":           GetFlash(session),
		"User":              userFromSession(session),
		"CartCount":         cartCount(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func prefillShipping(user *models.User) checkout.ShippingDetails {
	first, last := user.Name, ""
	if i := strings.Index(user.Name, " "); i > 0 {
		first, last = user.Name[:i], user.Name[i+1:]
	}
	return checkout.ShippingDetails{
		FirstName: first,
		LastName:  last,
		Email:     user.Email,
		Phone:     user.Phone,
		Address:   user.Address,
		City:      user.City,
		State:     user.State,
		ZipCode:   user.ZipCode,
	}
}
