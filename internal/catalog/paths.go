// Copyright (c) 2026 PressArt. All rights reserved.

package catalog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressart/storefront/pkg/slug"
)

// # Path Generator

// apostrophes are dropped before slugging so "l'herbe" becomes "lherbe",
// matching the uploaded filenames.
var apostrophes = strings.NewReplacer("'", "", "’", "")

// GeneratePaths expands a category's numbering rule into its ordered image
// identifiers. The result has exactly ItemCount entries for numeric rules and
// one entry per title for explicit lists.
//
// An unrecognized rule degrades to <PathPrefix><ID>_<NNN> and logs a warning.
func GeneratePaths(logger *slog.Logger, category Category) []string {
	rule := category.Rule

	// Hand-authored filenames win over any numeric pattern.
	if len(rule.Titles) > 0 {
		paths := make([]string, len(rule.Titles))
		for index, title := range rule.Titles {
			paths[index] = category.PathPrefix + explicitFilename(index+1, title)
		}
		return paths
	}

	paths := make([]string, category.ItemCount)

	switch rule.Kind {
	case RulePadded:
		for position := 1; position <= category.ItemCount; position++ {
			paths[position-1] = category.PathPrefix + rule.Stem + pad(position, rule.Width)
		}

	case RuleSplitRange:
		for position := 1; position <= category.ItemCount; position++ {
			if position <= rule.Threshold {
				paths[position-1] = category.PathPrefix + rule.Stem + pad(position, rule.Width)
			} else {
				paths[position-1] = category.PathPrefix + rule.UpperStem + pad(position, rule.UpperWidth)
			}
		}

	default:
		stem := strings.ToUpper(strings.ReplaceAll(category.ID, "-", "_")) + "_"
		logger.Warn("catalog_rule_fallback",
			slog.String("category_id", category.ID),
			slog.String("rule", string(rule.Kind)),
			slog.String("stem", stem),
		)
		for position := 1; position <= category.ItemCount; position++ {
			paths[position-1] = category.PathPrefix + stem + pad(position, 3)
		}
	}

	return paths
}

// explicitFilename is "<NN>-<slug(title)>".
func explicitFilename(position int, title string) string {
	return pad(position, 2) + "-" + slug.From(apostrophes.Replace(title))
}

// pad zero-pads n to width digits. Width 0 (or less) leaves n unpadded.
func pad(n, width int) string {
	if width <= 0 {
		return fmt.Sprint(n)
	}
	return fmt.Sprintf("%0*d", width, n)
}
