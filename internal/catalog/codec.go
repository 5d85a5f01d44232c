// Copyright (c) 2026 PressArt. All rights reserved.

package catalog

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pressart/storefront/internal/platform/apperr"
)

// ErrPositionOutOfRange is returned by [Registry.Encode] for a position
// outside 1..ItemCount.
var ErrPositionOutOfRange = apperr.ValidationError("Position out of range")

// # Item-Code Codec

// Encode formats the item code of the image at a 1-based position,
// "<CodePrefix>-<NN>" with at least two digits.
func (registry *Registry) Encode(categoryID string, position int) (string, error) {
	index, ok := registry.byID[categoryID]
	if !ok {
		return "", ErrCategoryNotFound
	}

	category := registry.categories[index]
	if position < 1 || position > category.ItemCount {
		return "", fmt.Errorf("catalog: %s position %d of %d: %w",
			categoryID, position, category.ItemCount, ErrPositionOutOfRange)
	}

	return formatCode(category.CodePrefix, position), nil
}

// Decode resolves an item code to the image it names.
//
// Surrounding whitespace is ignored; everything else is exact. The code is
// split on its last '-', the suffix must be all digits and positive, and the
// prefix must match a category's CodePrefix (case-sensitive). Every failure
// returns [ErrNotFound]; the reason is only logged, at debug level.
func (registry *Registry) Decode(code string) (Image, error) {
	code = strings.TrimSpace(code)

	separator := strings.LastIndex(code, "-")
	if separator <= 0 || separator == len(code)-1 {
		return Image{}, registry.notFound(code, "malformed")
	}

	prefix, suffix := code[:separator], code[separator+1:]
	if !allDigits(suffix) {
		return Image{}, registry.notFound(code, "non_numeric_suffix")
	}

	position, err := strconv.Atoi(suffix)
	if err != nil || position < 1 {
		return Image{}, registry.notFound(code, "invalid_position")
	}

	index, ok := registry.byPrefix[prefix]
	if !ok {
		return Image{}, registry.notFound(code, "unknown_prefix")
	}

	if position > len(registry.paths[index]) {
		return Image{}, registry.notFound(code, "out_of_range")
	}

	return registry.image(index, position), nil
}

// Image returns the image at a 1-based position of a category.
func (registry *Registry) Image(categoryID string, position int) (Image, error) {
	index, ok := registry.byID[categoryID]
	if !ok {
		return Image{}, ErrCategoryNotFound
	}
	if position < 1 || position > len(registry.paths[index]) {
		return Image{}, ErrNotFound
	}
	return registry.image(index, position), nil
}

// Images resolves every image of a category, in catalog order.
func (registry *Registry) Images(categoryID string) ([]Image, error) {
	index, ok := registry.byID[categoryID]
	if !ok {
		return nil, ErrCategoryNotFound
	}

	images := make([]Image, len(registry.paths[index]))
	for position := 1; position <= len(images); position++ {
		images[position-1] = registry.image(index, position)
	}
	return images, nil
}

func (registry *Registry) image(index, position int) Image {
	category := registry.categories[index]
	code := formatCode(category.CodePrefix, position)

	image := Image{
		CategoryID: category.ID,
		Position:   position,
		Code:       code,
		Path:       registry.paths[index][position-1],
		Alt:        code + " - " + category.Name,
	}
	if titles := category.Rule.Titles; len(titles) >= position {
		image.Title = titles[position-1]
	}
	return image
}

func (registry *Registry) notFound(code, reason string) error {
	registry.logger.Debug("catalog_code_not_found",
		slog.String("code", code),
		slog.String("reason", reason),
	)
	return ErrNotFound
}

func formatCode(prefix string, position int) string {
	return prefix + "-" + pad(position, 2)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
