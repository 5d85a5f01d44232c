// Copyright (c) 2026 PressArt. All rights reserved.

package catalog

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
)

// codePrefixFormat keeps prefixes compatible with the public code format.
var codePrefixFormat = regexp.MustCompile(`^[A-Z]+$`)

// # Category Registry

// Registry is the read-only catalog: categories, their generated paths and
// the code prefix table. It is built once and never mutated, so it is safe
// for concurrent use without locking.
type Registry struct {
	logger     *slog.Logger
	categories []Category
	byID       map[string]int
	byPrefix   map[string]int
	paths      [][]string
}

// NewRegistry validates the categories and precomputes every path list.
//
// It fails on duplicate ids or code prefixes, malformed prefixes, and any
// category whose generated sequence length differs from its ItemCount.
func NewRegistry(logger *slog.Logger, categories []Category) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry := &Registry{
		logger:     logger,
		categories: make([]Category, 0, len(categories)),
		byID:       make(map[string]int, len(categories)),
		byPrefix:   make(map[string]int, len(categories)),
		paths:      make([][]string, 0, len(categories)),
	}

	for _, category := range categories {

		// 1. Identity checks
		if category.ID == "" {
			return nil, fmt.Errorf("catalog: category with empty id")
		}
		if _, exists := registry.byID[category.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate category id %q", category.ID)
		}
		if !codePrefixFormat.MatchString(category.CodePrefix) {
			return nil, fmt.Errorf("catalog: category %q has invalid code prefix %q", category.ID, category.CodePrefix)
		}
		if other, exists := registry.byPrefix[category.CodePrefix]; exists {
			return nil, fmt.Errorf("catalog: code prefix %q used by %q and %q",
				category.CodePrefix, registry.categories[other].ID, category.ID)
		}

		// 2. Sequence length must match the declared count
		paths := GeneratePaths(logger, category)
		if category.ItemCount < 1 || len(paths) != category.ItemCount {
			return nil, fmt.Errorf("catalog: category %q declares %d items but its rule yields %d",
				category.ID, category.ItemCount, len(paths))
		}

		if category.Preview < 1 || category.Preview > category.ItemCount {
			category.Preview = 1
		}
		category.Rule.Titles = slices.Clone(category.Rule.Titles)

		index := len(registry.categories)
		registry.categories = append(registry.categories, category)
		registry.byID[category.ID] = index
		registry.byPrefix[category.CodePrefix] = index
		registry.paths = append(registry.paths, paths)
	}

	return registry, nil
}

// Category returns the category with the given id.
func (registry *Registry) Category(id string) (Category, error) {
	index, ok := registry.byID[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return registry.copyOf(index), nil
}

// Categories returns every category in declaration order.
func (registry *Registry) Categories() []Category {
	categories := make([]Category, len(registry.categories))
	for index := range registry.categories {
		categories[index] = registry.copyOf(index)
	}
	return categories
}

// Paths returns the ordered image identifiers of a category.
func (registry *Registry) Paths(id string) ([]string, error) {
	index, ok := registry.byID[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return slices.Clone(registry.paths[index]), nil
}

// copyOf hands out a category that shares no slices with the registry.
func (registry *Registry) copyOf(index int) Category {
	category := registry.categories[index]
	category.Rule.Titles = slices.Clone(category.Rule.Titles)
	return category
}
