package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/hariharanp05/eaclothingfrontend/internal/backend"
	"github.com/hariharanp05/eaclothingfrontend/internal/cart"
	"github.com/hariharanp05/eaclothingfrontend/internal/checkout"
)

// CartHandler mutates the session cart. The cart trusts its callers, so
// size/color presence checks and quantity clamping happen here.
type CartHandler struct {
	Backend      *backend.Client
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Pricing      checkout.Pricing
}

func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, shopSessionName)
	c := cartFromSession(session)
	totals := h.Pricing.Quote(c.TotalPrice())
	data := map[string]interface{}{
		"Cart":      c,
		"Totals":    totals,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"User":      userFromSession(session),
		"CartCount": c.TotalItems(),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Add puts a product/size/color line into the cart, merging quantities
// when the same line already exists.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	defer session.Save(r, w)

	productID, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid product."})
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}
	size := r.FormValue("size")
	color := r.FormValue("color")
	quantity := 1
	if q, err := strconv.Atoi(r.FormValue("quantity")); err == nil && q > 0 {
		quantity = q
	}

	product, err := h.Backend.Product(r.Context(), productID)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Product is unavailable right now."})
		http.Redirect(w, r, "/shop", http.StatusSeeOther)
		return
	}
	if size == "" || color == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Please choose a size and a color."})
		http.Redirect(w, r, "/product?id="+strconv.Itoa(productID), http.StatusSeeOther)
		return
	}

	c := cartFromSession(session)
	c.AddItem(cart.Item{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.Image,
		Price:     product.Price,
		Size:      size,
		Color:     color,
		Quantity:  quantity,
	})
	saveCart(session, c)

	session.AddFlash(FlashMessage{Type: "success", Message: "Added to cart."})
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Update sets a line's quantity, clamped to at least 1.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	defer session.Save(r, w)

	productID, _ := strconv.Atoi(r.FormValue("product_id"))
	size := r.FormValue("size")
	color := r.FormValue("color")
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 1 {
		quantity = 1
	}

	c := cartFromSession(session)
	c.UpdateQuantity(productID, size, color, quantity)
	saveCart(session, c)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	defer session.Save(r, w)

	productID, _ := strconv.Atoi(r.FormValue("product_id"))
	c := cartFromSession(session)
	c.RemoveItem(productID, r.FormValue("size"), r.FormValue("color"))
	saveCart(session, c)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	defer session.Save(r, w)

	c := cartFromSession(session)
	c.Clear()
	saveCart(session, c)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
