package handlers

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/hariharanp05/eaclothingfrontend/internal/auth"
	"github.com/hariharanp05/eaclothingfrontend/internal/backend"
	"github.com/hariharanp05/eaclothingfrontend/internal/models"
)

// AccountHandler owns the customer session. Credential checks go through
// the Verifier boundary; the shipped verifier is the stub in internal/auth.
type AccountHandler struct {
	Verifier     auth.Verifier
	Backend      *backend.Client
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *AccountHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, "login.html")
}

func (h *AccountHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.renderAuthPage(w, r, "signup.html")
}

func (h *AccountHandler) renderAuthPage(w http.ResponseWriter, r *http.Request, name string) {
	tmpl := h.Templates.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, shopSessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"User":      userFromSession(session),
		"CartCount": cartCount(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	defer session.Save(r, w)

	user, err := h.Verifier.Verify(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	saveUser(session, user)
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome back, " + user.Name + "!"})
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	defer session.Save(r, w)

	user, err := h.Verifier.Signup(r.Context(), r.FormValue("email"), r.FormValue("password"), r.FormValue("name"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/signup", http.StatusSeeOther)
		return
	}

	saveUser(session, user)
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + user.Name + "!"})
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	saveUser(session, nil)
	session.AddFlash(FlashMessage{Type: "success", Message: "Logged out successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AccountHandler) Account(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	user := userFromSession(session)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	tmpl := h.Templates.Get("account.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"User":      user,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"CartCount": cartCount(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateProfile merges the submitted non-empty fields into the current
// user. Without an active session it is a no-op redirect.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	defer session.Save(r, w)

	user := userFromSession(session)
	updated := auth.ApplyProfileUpdate(user, auth.ProfileUpdate{
		Name:    r.FormValue("name"),
		Phone:   r.FormValue("phone"),
		Address: r.FormValue("address"),
		City:    r.FormValue("city"),
		State:   r.FormValue("state"),
		ZipCode: r.FormValue("zip_code"),
	})
	if updated == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	saveUser(session, updated)
	session.AddFlash(FlashMessage{Type: "success", Message: "Profile updated."})
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

// MyOrders lists the signed-in customer's orders, matched by email since
// the backend keeps no customer accounts.
func (h *AccountHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, shopSessionName)
	user := userFromSession(session)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	all, err := h.Backend.Orders(r.Context())
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}
	var orders []models.Order
	for _, o := range all {
		if o.Email == user.Email {
			orders = append(orders, o)
		}
	}

	tmpl := h.Templates.Get("my_orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Orders":    orders,
		"User":      user,
		"Flashes":   GetFlash(session),
		"CartCount": cartCount(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
