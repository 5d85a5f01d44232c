// Copyright (c) 2026 PressArt. All rights reserved.

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/pressart/storefront/internal/platform/request"
	"github.com/pressart/storefront/internal/platform/respond"
	"github.com/pressart/storefront/pkg/pagination"
)

// Handler exposes the catalog over HTTP. Every route is public and read-only.
type Handler struct {
	service *Service
}

// NewHandler constructs a catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalog endpoints on a /api/v1 router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/categories", handler.listCategories)
	router.Get("/categories/{id}", handler.getCategory)
	router.Get("/categories/{id}/images", handler.listImages)
	router.Get("/codes/{code}", handler.resolveCode)
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Categories())
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.Category(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) listImages(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	images, meta, err := handler.service.Listing(requestutil.Param(request, "id"), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, images, meta)
}

/*
resolveCode answers the checkout assistant's "is this code real?" question.

Responses:
  - 200: The image, its URL and variants
  - 404: NOT_FOUND for any code that names no image
*/
func (handler *Handler) resolveCode(writer http.ResponseWriter, request *http.Request) {
	image, err := handler.service.Resolve(requestutil.Param(request, "code"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, image)
}
