// Copyright (c) 2026 PressArt. All rights reserved.

/*
Package checkout implements the checkout assistant workflow: validating cart
entries against the catalog, routing cart mutations to their owner, merging
the guest cart at login, and packaging selected lines into an order message.

Ownership:

  - Guest: lines live in a [cart.GuestStore] keyed by guest id.
  - Authenticated: lines live in the external store API; the local guest
    cart is untouched until the one-time merge at login.

Failure policy: a failed mutation leaves the previous cart in place and
surfaces NETWORK_ERROR. Only reads fall back to the guest cart.
*/
package checkout

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/catalog"
	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/validate"
)

// User-facing validation messages.
const (
	MsgEnterCode       = "Please enter an item code"
	MsgUnavailableCode = "Unavailable item code"
	MsgSelectSize      = "Please select a size"
	MsgSelectItems     = "Please select items to checkout"
	MsgBusy            = "Another cart update is still in progress"
)

// # Dependencies

// Catalog resolves item codes. *catalog.Service satisfies it.
type Catalog interface {
	Resolve(code string) (catalog.ImageView, error)
}

// Store is the authenticated cart API. *storeapi.Client satisfies it.
type Store interface {
	Cart(context context.Context, token string) ([]cart.Line, error)
	AddLine(context context.Context, token string, line cart.Line) ([]cart.Line, error)
	UpdateLine(context context.Context, token, lineID string, line cart.Line) ([]cart.Line, error)
	RemoveLine(context context.Context, token, lineID string) ([]cart.Line, error)
	ClearCart(context context.Context, token string) ([]cart.Line, error)
	SyncCart(context context.Context, token string, lines []cart.Line) ([]cart.Line, error)
}

// Owner identifies whose cart an operation touches. A non-empty Token makes
// the store API the owner; otherwise the guest cart under GuestID is used.
type Owner struct {
	Token   string
	GuestID string
}

// Authenticated reports whether the store API owns the cart.
func (owner Owner) Authenticated() bool {
	return owner.Token != ""
}

func (owner Owner) key() string {
	if owner.Authenticated() {
		return "token:" + owner.Token
	}
	return owner.guestKey()
}

func (owner Owner) guestKey() string {
	return "guest:" + owner.GuestID
}

// # Cart View

// Source names where a cart was read from.
type Source string

const (
	SourceServer Source = "server"
	SourceGuest  Source = "guest"
)

// Cart is the shopper's cart as returned by every operation.
type Cart struct {
	Lines  []cart.Line `json:"items"`
	Count  int         `json:"count"`
	Total  cart.Money  `json:"total"`
	Source Source      `json:"source"`
}

func newCart(lines []cart.Line, source Source) Cart {
	if lines == nil {
		lines = []cart.Line{}
	}
	return Cart{Lines: lines, Count: len(lines), Total: cart.Total(lines), Source: source}
}

// # Service

// Service is stateless apart from the in-flight guard; one instance serves
// every shopper.
type Service struct {
	catalog  Catalog
	store    Store
	guest    *cart.Guest
	channel  Channel
	logger   *slog.Logger
	now      func() time.Time
	inflight *inflight
	handoffs *handoffs
}

// NewService wires the checkout workflow.
func NewService(catalog Catalog, store Store, guest *cart.Guest, channel Channel, logger *slog.Logger) *Service {
	return &Service{
		catalog:  catalog,
		store:    store,
		guest:    guest,
		channel:  channel,
		logger:   logger,
		now:      time.Now,
		inflight: newInflight(),
		handoffs: newHandoffs(),
	}
}

/*
Validate checks an entry before any network call.

The checks run in the order a shopper fills the form, and the first failure
is returned: code present, code resolvable, size chosen, size known, quantity
positive.

Returns:
  - cart.Entry: The entry with its code trimmed
  - error: VALIDATION_ERROR whose message is the user-facing reason
*/
func (service *Service) Validate(entry cart.Entry) (cart.Entry, error) {
	entry.Code = strings.TrimSpace(entry.Code)

	switch {
	case entry.Code == "":
		return entry, invalid("code", MsgEnterCode)
	case !service.Resolvable(entry.Code):
		return entry, invalid("code", MsgUnavailableCode)
	case entry.Size == "":
		return entry, invalid("size", MsgSelectSize)
	}

	validator := &validate.Validator{}
	validator.
		OneOf("size", string(entry.Size), cart.SizeCodes()...).
		Range("quantity", entry.Quantity, 1, cart.MaxQuantity)

	return entry, validator.Err()
}

// Resolvable reports whether code names a catalog image.
func (service *Service) Resolvable(code string) bool {
	_, err := service.catalog.Resolve(code)
	return err == nil
}

// Preview resolves a line's code to its image.
func (service *Service) Preview(code string) (catalog.ImageView, error) {
	return service.catalog.Resolve(code)
}

/*
Lines returns the owner's cart.

For authenticated owners a NETWORK_ERROR from the store API falls back to the
guest cart; an expired session is returned as is so the caller can log out.
*/
func (service *Service) Lines(context context.Context, owner Owner) (Cart, error) {
	if owner.Authenticated() {
		lines, err := service.store.Cart(context, owner.Token)
		if err == nil {
			return newCart(lines, SourceServer), nil
		}
		if !apperr.HasCode(err, apperr.CodeNetwork) {
			return Cart{}, err
		}
		service.logger.Warn("cart_load_fallback", slog.String("error", err.Error()))
	}

	lines, err := service.guest.Lines(context, owner.GuestID)
	if err != nil {
		return Cart{}, err
	}
	return newCart(lines, SourceGuest), nil
}

// Add validates entry and appends it to the owner's cart.
func (service *Service) Add(context context.Context, owner Owner, entry cart.Entry) (Cart, error) {
	entry, err := service.Validate(entry)
	if err != nil {
		return Cart{}, err
	}

	return service.mutate(context, owner, "cart_add", func() ([]cart.Line, error) {
		if owner.Authenticated() {
			return service.store.AddLine(context, owner.Token, entry.Line("", service.now()))
		}
		return service.guest.Add(context, owner.GuestID, entry)
	})
}

// Update validates entry and replaces the line with lineID.
func (service *Service) Update(context context.Context, owner Owner, lineID string, entry cart.Entry) (Cart, error) {
	entry, err := service.Validate(entry)
	if err != nil {
		return Cart{}, err
	}
	if strings.TrimSpace(lineID) == "" {
		return Cart{}, cart.ErrLineNotFound
	}

	return service.mutate(context, owner, "cart_update", func() ([]cart.Line, error) {
		if owner.Authenticated() {
			return service.store.UpdateLine(context, owner.Token, lineID, entry.Line(lineID, time.Time{}))
		}
		return service.guest.Update(context, owner.GuestID, lineID, entry)
	})
}

// Remove drops the line with lineID from the owner's cart.
func (service *Service) Remove(context context.Context, owner Owner, lineID string) (Cart, error) {
	return service.mutate(context, owner, "cart_remove", func() ([]cart.Line, error) {
		if owner.Authenticated() {
			return service.store.RemoveLine(context, owner.Token, lineID)
		}
		return service.guest.Remove(context, owner.GuestID, lineID)
	})
}

// Clear empties the owner's cart.
func (service *Service) Clear(context context.Context, owner Owner) (Cart, error) {
	return service.mutate(context, owner, "cart_clear", func() ([]cart.Line, error) {
		if owner.Authenticated() {
			return service.store.ClearCart(context, owner.Token)
		}
		if err := service.guest.Clear(context, owner.GuestID); err != nil {
			return nil, err
		}
		return []cart.Line{}, nil
	})
}

// mutate runs one cart mutation under the owner's in-flight guard. The
// result replaces the cart wholesale; on failure nothing changes.
func (service *Service) mutate(context context.Context, owner Owner, action string, run func() ([]cart.Line, error)) (Cart, error) {
	release, ok := service.inflight.acquire(owner.key())
	if !ok {
		return Cart{}, apperr.Conflict(MsgBusy)
	}
	defer release()

	lines, err := run()
	if err != nil {
		service.logger.Warn(action+"_failed",
			slog.Bool("authenticated", owner.Authenticated()),
			slog.String("error", err.Error()),
		)
		return Cart{}, err
	}

	source := SourceGuest
	if owner.Authenticated() {
		source = SourceServer
	}
	return newCart(lines, source), nil
}

func invalid(field, message string) *apperr.AppError {
	return apperr.ValidationError(message, apperr.FieldError{Field: field, Message: message})
}
