// Copyright (c) 2026 PressArt. All rights reserved.

package catalog

import (
	"github.com/pressart/storefront/internal/media"
	"github.com/pressart/storefront/pkg/pagination"
	"github.com/pressart/storefront/pkg/slice"
)

// # Service Layer

// CategoryView is a category as presented to clients, with its card image.
type CategoryView struct {
	Category
	PreviewURL string `json:"preview_url"`
}

// ImageView is a resolved image with its URL and responsive variants.
type ImageView struct {
	Image
	URL      string          `json:"url"`
	Variants []media.Variant `json:"variants"`
}

// Service decorates registry lookups with URLs from the configured CDN.
type Service struct {
	registry *Registry
	urls     media.URLBuilder
}

// NewService constructs a catalog [Service].
func NewService(registry *Registry, urls media.URLBuilder) *Service {
	return &Service{registry: registry, urls: urls}
}

// Registry exposes the underlying read-only registry (codec, paths).
func (service *Service) Registry() *Registry {
	return service.registry
}

// Categories lists every category with its preview URL.
func (service *Service) Categories() []CategoryView {
	return slice.Map(service.registry.Categories(), service.categoryView)
}

// Category returns one category with its preview URL.
func (service *Service) Category(id string) (CategoryView, error) {
	category, err := service.registry.Category(id)
	if err != nil {
		return CategoryView{}, err
	}
	return service.categoryView(category), nil
}

/*
Listing returns one page of a category's images.

Parameters:
  - id: string (Category id)
  - page: pagination.Params (Already clamped by [pagination.FromRequest])

Returns:
  - []ImageView: The images on the page, in catalog order
  - pagination.Meta: Totals for the response envelope
  - error: ErrCategoryNotFound for an unknown id
*/
func (service *Service) Listing(id string, page pagination.Params) ([]ImageView, pagination.Meta, error) {
	images, err := service.registry.Images(id)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	start, end := page.Window(len(images))
	views := slice.Map(images[start:end], service.imageView)

	return views, pagination.NewMeta(page.Page, page.Limit, len(images)), nil
}

// Resolve decodes an item code into a displayable image.
func (service *Service) Resolve(code string) (ImageView, error) {
	image, err := service.registry.Decode(code)
	if err != nil {
		return ImageView{}, err
	}
	return service.imageView(image), nil
}

// URL returns the plain URL of an image identifier.
func (service *Service) URL(path string) string {
	return service.urls.URL(path, media.Transform{})
}

func (service *Service) categoryView(category Category) CategoryView {
	view := CategoryView{Category: category}
	if image, err := service.registry.Image(category.ID, category.Preview); err == nil {
		view.PreviewURL = service.urls.URL(image.Path, media.Transform{Width: 600})
	}
	return view
}

func (service *Service) imageView(image Image) ImageView {
	return ImageView{
		Image:    image,
		URL:      service.urls.URL(image.Path, media.Transform{}),
		Variants: media.Responsive(service.urls, image.Path),
	}
}
