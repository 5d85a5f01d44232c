// Copyright (c) 2026 PressArt. All rights reserved.

/*
Package catalog defines the PressArt image catalog and its public item codes.

It maps between a category's image-numbering convention and the short codes
(e.g. "PAINTINGS-32") that customers see on the site and type into the
checkout assistant.

Core Responsibility:

  - Registry: One canonical, read-only table of categories.
  - Path Generator: Expands each category's numbering rule into the ordered
    list of image identifiers (storage paths without extension).
  - Codec: Encodes (category, position) into an item code and decodes an item
    code back into the image it names.

This package holds no CDN knowledge. Turning an identifier into a URL is the
job of the media package, selected by configuration.
*/
package catalog

import (
	"regexp"

	"github.com/pressart/storefront/internal/platform/apperr"
)

// # Domain Errors

var (
	// ErrNotFound is returned by [Registry.Decode] for every code that does not
	// name an image: malformed, unknown prefix or position out of range.
	ErrNotFound = apperr.NotFound("Item code")

	// ErrCategoryNotFound is returned for an unknown category id.
	ErrCategoryNotFound = apperr.NotFound("Category")
)

// codeFormat is the public, customer-facing item code shape.
var codeFormat = regexp.MustCompile(`^[A-Z]+-\d{2,}$`)

// ValidCodeFormat reports whether code has the shape of an item code.
// A well-formed code may still name no image; use [Registry.Decode] for that.
func ValidCodeFormat(code string) bool {
	return codeFormat.MatchString(code)
}

// # Numbering Rules

// RuleKind selects which Path Generator rule a category uses.
type RuleKind string

const (
	// RulePadded maps position i to <Stem><pad(i, Width)>.
	RulePadded RuleKind = "padded"

	// RuleSplitRange uses <Stem><pad(i, Width)> up to Threshold and
	// <UpperStem><pad(i, UpperWidth)> after it.
	RuleSplitRange RuleKind = "split_range"

	// RuleExplicitList takes filenames from Titles, in declaration order.
	RuleExplicitList RuleKind = "explicit_list"
)

// NumberingRule describes how a category's image filenames are formed.
//
// A non-empty Titles list always wins over the numeric fields, whatever Kind
// says: hand-authored filenames are the source of truth for their category.
type NumberingRule struct {
	Kind RuleKind `json:"kind"`

	// Stem and Width drive padded numbering. Width 0 means unpadded.
	Stem  string `json:"stem,omitempty"`
	Width int    `json:"width,omitempty"`

	// Threshold, UpperStem and UpperWidth drive the second half of a split range.
	Threshold  int    `json:"threshold,omitempty"`
	UpperStem  string `json:"upper_stem,omitempty"`
	UpperWidth int    `json:"upper_width,omitempty"`

	// Titles lists the human-readable titles of an explicit-list category.
	Titles []string `json:"-"`
}

// # Domain Entities

// Category is an immutable descriptor of one catalog category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// PathPrefix is the storage path segment prepended to every filename.
	PathPrefix string `json:"path_prefix"`

	// CodePrefix is the fixed abbreviation used in item codes. It is not
	// derived from ID (dc-heroes encodes as HEROES).
	CodePrefix string `json:"code_prefix"`

	ItemCount int `json:"item_count"`

	// Preview is the 1-based position of the image shown on the category card.
	Preview int `json:"preview"`

	Rule NumberingRule `json:"rule"`
}

// Image is one resolved catalog entry.
type Image struct {
	CategoryID string `json:"category_id"`
	Position   int    `json:"position"`
	Code       string `json:"code"`

	// Path is the image identifier: storage path without extension.
	Path string `json:"path"`

	// Title is set for explicit-list categories only.
	Title string `json:"title,omitempty"`

	// Alt is the accessible description, "<code> - <category name>".
	Alt string `json:"alt"`
}
