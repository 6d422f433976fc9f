package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/hariharanp05/eaclothingfrontend/internal/backend"
)

// ShopHandler serves the public catalog pages. All data comes from the
// backend on every request; there is no local cache to invalidate.
type ShopHandler struct {
	Backend      *backend.Client
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

const featuredCount = 8

func (h *ShopHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	products, err := h.Backend.Products(r.Context(), "")
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	if len(products) > featuredCount {
		products = products[:featuredCount]
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, shopSessionName)
	data := map[string]interface{}{
		"Products":  products,
		"Flashes":   GetFlash(session),
		"User":      userFromSession(session),
		"CartCount": cartCount(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Shop renders the full catalog, optionally filtered by collection slug.
func (h *ShopHandler) Shop(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("collection")

	products, err := h.Backend.Products(r.Context(), selected)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	collections, err := h.Backend.Collections(r.Context())
	if err != nil {
		// The filter bar degrades to "all"; the grid still renders.
		collections = nil
	}

	tmpl := h.Templates.Get("shop.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, shopSessionName)
	data := map[string]interface{}{
		"Products":    products,
		"Collections": collections,
		"Selected":    selected,
		"Flashes":     GetFlash(session),
		"User":        userFromSession(session),
		"CartCount":   cartCount(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *ShopHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	product, err := h.Backend.Product(r.Context(), id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Error fetching product", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, shopSessionName)
	data := map[string]interface{}{
		"Product":   product,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"User":      userFromSession(session),
		"CartCount": cartCount(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func cartCount(session *sessions.Session) int {
	c := cartFromSession(session)
	return c.TotalItems()
}
