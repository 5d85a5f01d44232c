// Copyright (c) 2026 PressArt. All rights reserved.

/*
Package cart defines cart lines, print sizes and guest cart storage.

A cart is owned either by the external store API (logged-in shoppers) or by
local guest storage (anonymous shoppers). Ownership moves exactly once, at
login, through the merge performed by the checkout package.

Core Responsibility:

  - Pricing: Print sizes and their unit prices.
  - Lines: The cart line shape shared with the store API and guest storage.
  - Guest storage: File (terminal assistant) and Redis (API server) stores.
*/
package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/pressart/storefront/pkg/slice"
)

// # Print Sizes

// Size is a print size code.
type Size string

const (
	SizeSmall      Size = "S"
	SizeMedium     Size = "M"
	SizeLarge      Size = "L"
	SizeExtraLarge Size = "XL"
)

// MaxQuantity caps the prints per line so totals stay well inside Money.
const MaxQuantity = 99

type sizeInfo struct {
	name  string
	price Money
}

var sizeTable = map[Size]sizeInfo{
	SizeSmall:      {`Small (8x10")`, 15},
	SizeMedium:     {`Medium (11x14")`, 25},
	SizeLarge:      {`Large (16x20")`, 40},
	SizeExtraLarge: {`X-Large (20x24")`, 60},
}

// Sizes returns every print size, smallest first.
func Sizes() []Size {
	return []Size{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge}
}

// SizeCodes returns the size codes as strings, for validation messages.
func SizeCodes() []string {
	return slice.Map(Sizes(), func(size Size) string { return string(size) })
}

// IsValid reports whether s is a recognised [Size].
func (s Size) IsValid() bool {
	_, ok := sizeTable[s]
	return ok
}

// Name is the display name, e.g. `Medium (11x14")`.
func (s Size) Name() string {
	return sizeTable[s].name
}

// Price is the unit price of a print of this size.
func (s Size) Price() Money {
	return sizeTable[s].price
}

// # Money

// Money is an amount in whole US dollars. Every catalog price is whole.
type Money int64

// String formats the amount the way the storefront shows it, e.g. "$25".
func (m Money) String() string {
	return "$" + strconv.FormatInt(int64(m), 10)
}

// UnmarshalJSON accepts integral and fractional numbers, rounding the latter;
// the store API has sent both.
func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	value, err := strconv.ParseFloat(string(bytes.Trim(data, `"`)), 64)
	if err != nil {
		return fmt.Errorf("cart: invalid money amount %s: %w", data, err)
	}
	*m = Money(math.Round(value))
	return nil
}

// # Lines

// Line is one cart entry: an item code printed at a size, in a quantity.
type Line struct {
	// ID is the line key. Guest lines use millisecond stamps; server lines
	// use the store API's identifiers.
	ID       string    `json:"-"`
	Code     string    `json:"code"`
	Size     Size      `json:"size"`
	Quantity int       `json:"quantity"`
	Price    Money     `json:"price"`
	Total    Money     `json:"total"`
	AddedAt  time.Time `json:"addedAt,omitzero"`
}

// lineJSON carries both id spellings. Server lines carry "_id"; guest lines
// carry a numeric "id".
type lineJSON struct {
	ID      json.RawMessage `json:"id,omitempty"`
	MongoID json.RawMessage `json:"_id,omitempty"`
	lineFields
}

type lineFields struct {
	Code     string    `json:"code"`
	Size     Size      `json:"size"`
	Quantity int       `json:"quantity"`
	Price    Money     `json:"price"`
	Total    Money     `json:"total"`
	AddedAt  time.Time `json:"addedAt,omitzero"`
}

// MarshalJSON writes the id as a number when it is all digits, preserving the
// guest cart's original shape, and as a string otherwise.
func (line Line) MarshalJSON() ([]byte, error) {
	encoded := lineJSON{lineFields: lineFields{
		Code:     line.Code,
		Size:     line.Size,
		Quantity: line.Quantity,
		Price:    line.Price,
		Total:    line.Total,
		AddedAt:  line.AddedAt,
	}}

	if line.ID != "" {
		if isDigits(line.ID) && (len(line.ID) == 1 || line.ID[0] != '0') {
			encoded.ID = json.RawMessage(line.ID)
		} else {
			quoted, err := json.Marshal(line.ID)
			if err != nil {
				return nil, err
			}
			encoded.ID = quoted
		}
	}

	return json.Marshal(encoded)
}

// UnmarshalJSON reads "_id" in preference to "id", numeric or string.
// A missing total is derived from price and quantity.
func (line *Line) UnmarshalJSON(data []byte) error {
	var decoded lineJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	raw := decoded.MongoID
	if len(raw) == 0 || string(raw) == "null" {
		raw = decoded.ID
	}

	id, err := rawID(raw)
	if err != nil {
		return err
	}

	*line = Line{
		ID:       id,
		Code:     decoded.Code,
		Size:     decoded.Size,
		Quantity: decoded.Quantity,
		Price:    decoded.Price,
		Total:    decoded.Total,
		AddedAt:  decoded.AddedAt,
	}
	if line.Total == 0 {
		line.Total = line.Price * Money(line.Quantity)
	}
	return nil
}

func rawID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err != nil {
		return "", fmt.Errorf("cart: line id must be a string or number: %s", raw)
	}
	return asNumber.String(), nil
}

// # Entries

// Entry is a shopper's request to put a code in the cart at a size.
type Entry struct {
	Code     string `json:"code"`
	Size     Size   `json:"size"`
	Quantity int    `json:"quantity"`
}

// Line prices the entry from the size table.
func (entry Entry) Line(id string, addedAt time.Time) Line {
	price := entry.Size.Price()
	return Line{
		ID:       id,
		Code:     entry.Code,
		Size:     entry.Size,
		Quantity: entry.Quantity,
		Price:    price,
		Total:    price * Money(entry.Quantity),
		AddedAt:  addedAt,
	}
}

// # Helpers

// Total sums line totals.
func Total(lines []Line) Money {
	return slice.Reduce(lines, Money(0), func(sum Money, line Line) Money { return sum + line.Total })
}

// Find returns the index of the line with the given id, or -1.
func Find(lines []Line, id string) int {
	for index, line := range lines {
		if line.ID == id {
			return index
		}
	}
	return -1
}

// NewLineID returns a millisecond-stamp id not already used by lines.
func NewLineID(now time.Time, lines []Line) string {
	stamp := now.UnixMilli()
	for {
		id := strconv.FormatInt(stamp, 10)
		if Find(lines, id) < 0 {
			return id
		}
		stamp++
	}
}

func isDigits(s string) bool {
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
