// Copyright (c) 2026 PressArt. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pressart/storefront/pkg/slug"
)

/*
TestFrom covers accents, punctuation and spacing.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Las Meninas by Diego Velázquez", "las-meninas-by-diego-velazquez"},
		{"The Raft of the Medusa by Théodore Géricault", "the-raft-of-the-medusa-by-theodore-gericault"},
		{"The Triumph of Venus by François Boucher", "the-triumph-of-venus-by-francois-boucher"},
		{"Impression, Sunrise by Claude Monet", "impression-sunrise-by-claude-monet"},
		{"  St. George -- and the Dragon  ", "st-george-and-the-dragon"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
