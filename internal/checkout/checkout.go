// Package checkout implements the three step checkout wizard:
// shipping -> payment -> review. Moving off the shipping step submits a
// draft order to the backend and retains the assigned order id; everything
// after that is local state until Finalize clears the cart.
package checkout

import (
	"context"
	"encoding/gob"
	"fmt"
	"strings"

	"github.com/hariharanp05/eaclothingfrontend/internal/cart"
	"github.com/hariharanp05/eaclothingfrontend/internal/models"
	"github.com/shopspring/decimal"
)

func init() {
	gob.Register(State{})
}

type Step string

const (
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	StepReview   Step = "review"
)

type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentOnline PaymentMethod = "online"
)

// ShippingDetails are the fields gathered on the first step. All of them
// are required; only presence is validated here.
type ShippingDetails struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
}

func (s ShippingDetails) missingFields() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"first name", s.FirstName},
		{"last name", s.LastName},
		{"email", s.Email},
		{"phone", s.Phone},
		{"address", s.Address},
		{"city", s.City},
		{"state", s.State},
		{"zip code", s.ZipCode},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ValidationError blocks a forward transition; the message is shown inline
// and nothing else changes.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// State is the wizard's session-resident state. OrderID is zero until the
// backend accepts the draft order.
type State struct {
	Step          Step
	Shipping      ShippingDetails
	OrderID       int
	ClientRef     string
	PaymentMethod PaymentMethod
}

// NewState starts a fresh wizard on the shipping step. clientRef is an
// idempotency token attached to the draft order so a retried submission
// can be deduplicated server-side.
func NewState(clientRef string) State {
	return State{Step: StepShipping, ClientRef: clientRef}
}

// Pricing holds the display-estimate knobs. The backend's stored totals
// remain canonical; these figures are advisory echoes.
type Pricing struct {
	FreeShippingAt decimal.Decimal
	FlatShipping   decimal.Decimal
	TaxRate        decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingAt: decimal.NewFromInt(100),
		FlatShipping:   decimal.NewFromInt(10),
		TaxRate:        decimal.RequireFromString("0.08"),
	}
}

type Totals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Quote derives the order totals from a subtotal: shipping is free at or
// above the threshold, and tax applies to goods plus shipping.
func (p Pricing) Quote(subtotal decimal.Decimal) Totals {
	shipping := p.FlatShipping
	if subtotal.GreaterThanOrEqual(p.FreeShippingAt) {
		shipping = decimal.Zero
	}
	tax := subtotal.Add(shipping).Mul(p.TaxRate)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}

// OrderPlacer is the backend boundary the wizard depends on.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, draft models.OrderDraft) (int, error)
}

// Machine drives one checkout session. A failed forward transition keeps
// the wizard on its current step; a failed draft submission additionally
// drops any order id retained from an earlier attempt.
type Machine struct {
	State   State
	Pricing Pricing
	Placer  OrderPlacer
}

// SubmitShipping validates presence of every shipping field, submits the
// draft order and advances to the payment step. On a backend error the
// step stays at shipping and no order id is retained.
func (m *Machine) SubmitShipping(ctx context.Context, c *cart.Cart, details ShippingDetails) error {
	if m.State.Step != StepShipping {
		return fmt.Errorf("cannot submit shipping from step %q", m.State.Step)
	}
	if missing := details.missingFields(); len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if c.IsEmpty() {
		return &ValidationError{Fields: []string{"cart"}}
	}

	// Resubmitting supersedes any draft accepted earlier, so the retained
	// id is dropped before the attempt. A failure leaves it unset.
	m.State.OrderID = 0
	draft := m.buildDraft(c, details)
	orderID, err := m.Placer.PlaceOrder(ctx, draft)
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}

	m.State.Shipping = details
	m.State.OrderID = orderID
	m.State.Step = StepPayment
	return nil
}

func (m *Machine) buildDraft(c *cart.Cart, details ShippingDetails) models.OrderDraft {
	totals := m.Pricing.Quote(c.TotalPrice())
	draft := models.OrderDraft{
		CustomerName:  strings.TrimSpace(details.FirstName + " " + details.LastName),
		Email:         details.Email,
		Phone:         details.Phone,
		Address:       details.Address,
		City:          details.City,
		State:         details.State,
		Pincode:       details.ZipCode,
		Subtotal:      totals.Subtotal,
		ShippingCost:  totals.Shipping,
		Tax:           totals.Tax,
		FinalTotal:    totals.Total,
		PaymentMethod: "pending",
		ClientRef:     m.State.ClientRef,
	}
	for _, item := range c.Items {
		draft.Items = append(draft.Items, models.DraftItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return draft
}

// SubmitPayment records the chosen payment method and advances to review.
func (m *Machine) SubmitPayment(method PaymentMethod) error {
	if m.State.Step != StepPayment {
		return fmt.Errorf("cannot submit payment from step %q", m.State.Step)
	}
	if method != PaymentCOD && method != PaymentOnline {
		return &ValidationError{Fields: []string{"payment method"}}
	}
	m.State.PaymentMethod = method
	m.State.Step = StepReview
	return nil
}

// Back moves one step towards shipping. Backward transitions are
// unconditional; on the shipping step it is a no-op.
func (m *Machine) Back() {
	switch m.State.Step {
	case StepPayment:
		m.State.Step = StepShipping
	case StepReview:
		m.State.Step = StepPayment
	}
}

// Finalize completes the wizard: it requires the review step with a chosen
// payment method, clears the cart and returns the retained order id. The
// server-side order state is not re-validated here.
func (m *Machine) Finalize(c *cart.Cart) (int, error) {
	if m.State.Step != StepReview {
		return 0, fmt.Errorf("cannot finalize from step %q", m.State.Step)
	}
	if m.State.PaymentMethod == "" {
		return 0, &ValidationError{Fields: []string{"payment method"}}
	}
	c.Clear()
	return m.State.OrderID, nil
}
