// Copyright (c) 2026 PressArt. All rights reserved.

package checkout

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/platform/middleware"
	requestutil "github.com/pressart/storefront/internal/platform/request"
	"github.com/pressart/storefront/internal/platform/respond"
)

// Handler exposes the cart workflow to browser clients.
//
// Anonymous requests are identified by X-Guest-ID; requests with a live
// bearer token act on the account cart.
type Handler struct {
	service *Service
}

// NewHandler constructs a checkout [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /cart endpoints.
//
// # Routing Strategy
//
//   - Cart (Guest or Account): read, add, edit, remove, clear, checkout.
//   - Merge (Account): hands the guest cart to the account cart.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.GuestID())

	router.Get("/", handler.getCart)
	router.Delete("/", handler.clearCart)
	router.Post("/items", handler.addItem)
	router.Put("/items/{id}", handler.updateItem)
	router.Delete("/items/{id}", handler.removeItem)
	router.Post("/checkout", handler.checkout)

	router.With(middleware.RequireAuth).Post("/merge", handler.merge)

	return router
}

type checkoutRequest struct {
	Selected []string `json:"selected"`
	All      bool     `json:"all"`
}

func owner(request *http.Request) Owner {
	return Owner{
		Token:   requestutil.Token(request),
		GuestID: requestutil.GuestID(request),
	}
}

/*
GET /api/v1/cart.

Response:
  - 200: Cart: Account cart, or the guest cart when anonymous or when the
    store API is unreachable (source tells which)
  - 401: SESSION_EXPIRED
*/
func (handler *Handler) getCart(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.service.Lines(request.Context(), owner(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, current)
}

/*
POST /api/v1/cart/items.

Request:
  - body: cart.Entry {code, size, quantity}

Response:
  - 201: Cart: The whole cart after the addition
  - 400: VALIDATION_ERROR: Missing code, unavailable code, missing size
  - 409: CONFLICT: Another mutation for this cart is in flight
  - 502: NETWORK_ERROR: The store API failed; the cart is unchanged
*/
func (handler *Handler) addItem(writer http.ResponseWriter, request *http.Request) {
	var entry cart.Entry
	if err := requestutil.DecodeJSON(writer, request, &entry); err != nil {
		respond.Error(writer, request, err)
		return
	}

	current, err := handler.service.Add(request.Context(), owner(request), entry)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, current)
}

// PUT /api/v1/cart/items/{id}.
func (handler *Handler) updateItem(writer http.ResponseWriter, request *http.Request) {
	var entry cart.Entry
	if err := requestutil.DecodeJSON(writer, request, &entry); err != nil {
		respond.Error(writer, request, err)
		return
	}

	current, err := handler.service.Update(request.Context(), owner(request), requestutil.Param(request, "id"), entry)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, current)
}

// DELETE /api/v1/cart/items/{id}.
func (handler *Handler) removeItem(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.service.Remove(request.Context(), owner(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, current)
}

// DELETE /api/v1/cart.
func (handler *Handler) clearCart(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.service.Clear(request.Context(), owner(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, current)
}

/*
POST /api/v1/cart/checkout.

Description: Builds the order message and deep link for the selected lines.
The cart is not modified.

Request:
  - body: {selected: [line ids]} or {all: true}

Response:
  - 200: Order
  - 400: VALIDATION_ERROR: Nothing selected
*/
func (handler *Handler) checkout(writer http.ResponseWriter, request *http.Request) {
	var input checkoutRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	current, err := handler.service.Lines(request.Context(), owner(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	selected := input.Selected
	if input.All {
		selected = make([]string, len(current.Lines))
		for index, line := range current.Lines {
			selected[index] = line.ID
		}
	}

	order, err := handler.service.Checkout(current.Lines, selected)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, order)
}

/*
POST /api/v1/cart/merge.

Description: Hands the X-Guest-ID cart to the account cart. Safe to retry
after merge_failed; after merged the guest cart is empty and a retry
reports guest_cart_empty.

Response:
  - 200: MergeResult
  - 401: UNAUTHORIZED / SESSION_EXPIRED
*/
func (handler *Handler) merge(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.service.Merge(request.Context(), owner(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
