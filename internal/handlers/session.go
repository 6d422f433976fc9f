package handlers

import (
	"encoding/gob"

	"github.com/gorilla/sessions"
	"github.com/hariharanp05/eaclothingfrontend/internal/cart"
	"github.com/hariharanp05/eaclothingfrontend/internal/checkout"
	"github.com/hariharanp05/eaclothingfrontend/internal/models"
)

// Session names. The shop session carries the cart, the checkout wizard
// and the customer account; the admin session only carries the
// authenticated flag. The two are never unioned.
const (
	shopSessionName  = "shop-session"
	adminSessionName = "admin-session"
)

const (
	sessionCartKey     = "cart"
	sessionCheckoutKey = "checkout"
	sessionUserKey     = "user"
)

// Register types for gob encoding (used by sessions)
func init() {
	gob.Register(FlashMessage{})
	gob.Register(models.User{})
}

func cartFromSession(session *sessions.Session) cart.Cart {
	if c, ok := session.Values[sessionCartKey].(cart.Cart); ok {
		return c
	}
	return cart.Cart{}
}

func saveCart(session *sessions.Session, c cart.Cart) {
	session.Values[sessionCartKey] = c
}

func checkoutFromSession(session *sessions.Session) (checkout.State, bool) {
	state, ok := session.Values[sessionCheckoutKey].(checkout.State)
	return state, ok
}

func saveCheckout(session *sessions.Session, state checkout.State) {
	session.Values[sessionCheckoutKey] = state
}

func clearCheckout(session *sessions.Session) {
	delete(session.Values, sessionCheckoutKey)
}

func userFromSession(session *sessions.Session) *models.User {
	if u, ok := session.Values[sessionUserKey].(models.User); ok {
		return &u
	}
	return nil
}

func saveUser(session *sessions.Session, u *models.User) {
	if u == nil {
		delete(session.Values, sessionUserKey)
		return
	}
	session.Values[sessionUserKey] = *u
}
