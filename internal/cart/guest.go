// Copyright (c) 2026 PressArt. All rights reserved.

package cart

import (
	"context"
	"time"

	"github.com/pressart/storefront/internal/platform/apperr"
)

// ErrLineNotFound is returned when a line id names no line in the cart.
var ErrLineNotFound = apperr.NotFound("Cart item")

// Guest applies cart mutations to a [GuestStore]. Entries are assumed to be
// validated by the caller; Guest only prices and persists them.
type Guest struct {
	store GuestStore
	now   func() time.Time
}

// NewGuest wraps store. now stamps line ids and may be nil.
func NewGuest(store GuestStore, now func() time.Time) *Guest {
	if now == nil {
		now = time.Now
	}
	return &Guest{store: store, now: now}
}

// Lines returns the guest's current lines.
func (guest *Guest) Lines(context context.Context, guestID string) ([]Line, error) {
	return guest.store.Load(context, guestID)
}

// Add appends a new line priced from the size table.
func (guest *Guest) Add(context context.Context, guestID string, entry Entry) ([]Line, error) {
	lines, err := guest.store.Load(context, guestID)
	if err != nil {
		return nil, err
	}

	now := guest.now()
	lines = append(lines, entry.Line(NewLineID(now, lines), now))

	if err := guest.store.Save(context, guestID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

/*
Update replaces the code, size and quantity of an existing line.

The line keeps its id and its AddedAt stamp; price and total are recomputed.

Returns:
  - []Line: The updated cart
  - error: [ErrLineNotFound] if lineID names no line
*/
func (guest *Guest) Update(context context.Context, guestID, lineID string, entry Entry) ([]Line, error) {
	lines, err := guest.store.Load(context, guestID)
	if err != nil {
		return nil, err
	}

	index := Find(lines, lineID)
	if index < 0 {
		return nil, ErrLineNotFound
	}
	lines[index] = entry.Line(lineID, lines[index].AddedAt)

	if err := guest.store.Save(context, guestID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove drops the line with lineID. Removing an absent line is a no-op.
func (guest *Guest) Remove(context context.Context, guestID, lineID string) ([]Line, error) {
	lines, err := guest.store.Load(context, guestID)
	if err != nil {
		return nil, err
	}

	index := Find(lines, lineID)
	if index < 0 {
		return lines, nil
	}
	lines = append(lines[:index], lines[index+1:]...)

	if err := guest.store.Save(context, guestID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Clear empties the guest cart.
func (guest *Guest) Clear(context context.Context, guestID string) error {
	return guest.store.Clear(context, guestID)
}
