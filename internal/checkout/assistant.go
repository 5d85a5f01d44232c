// Copyright (c) 2026 PressArt. All rights reserved.

package checkout

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/catalog"
	"github.com/pressart/storefront/internal/platform/apperr"
)

// # Pending Entry State Machine

// Stage is the state of the entry being composed.
//
//	Empty -> CodeEntered -> Invalid
//	                     -> Valid -> OptionsShown -> Submitted -> Empty
//	OptionsShown -> Empty (cancel edit)
//
// Valid and Submitted are never observed at rest: a valid code shows its
// options at once, and a submitted entry is cleared as soon as the cart
// accepts it.
type Stage string

const (
	StageEmpty        Stage = "empty"
	StageCodeEntered  Stage = "code_entered"
	StageInvalid      Stage = "invalid"
	StageOptionsShown Stage = "options_shown"
)

// Pending is the entry being composed, with its stage.
type Pending struct {
	Stage    Stage
	Code     string
	Size     cart.Size
	Quantity int

	// Editing is the id of the line being edited, empty when adding.
	Editing string
}

func emptyPending() Pending {
	return Pending{Stage: StageEmpty, Quantity: 1}
}

// Assistant is the stateful checkout assistant for a single shopper: one
// pending entry, the loaded cart and the line selection. It is safe for
// concurrent use; a second mutation while one is outstanding is rejected.
type Assistant struct {
	service *Service

	mu       sync.Mutex
	owner    Owner
	pending  Pending
	lines    []cart.Line
	selected map[string]struct{}
	busy     bool
}

// NewAssistant starts a guest assistant for guestID.
func NewAssistant(service *Service, guestID string) *Assistant {
	return &Assistant{
		service:  service,
		owner:    Owner{GuestID: guestID},
		pending:  emptyPending(),
		lines:    []cart.Line{},
		selected: make(map[string]struct{}),
	}
}

// Pending returns the entry being composed.
func (assistant *Assistant) Pending() Pending {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	return assistant.pending
}

// Lines returns the loaded cart lines.
func (assistant *Assistant) Lines() []cart.Line {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	return slices.Clone(assistant.lines)
}

// Owner returns whose cart the assistant is showing.
func (assistant *Assistant) Owner() Owner {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	return assistant.owner
}

// Busy reports whether a mutation is outstanding.
func (assistant *Assistant) Busy() bool {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	return assistant.busy
}

/*
EnterCode moves the pending entry to OptionsShown for a resolvable code and
to Invalid otherwise. An empty code resets the entry.
*/
func (assistant *Assistant) EnterCode(code string) Stage {
	code = strings.TrimSpace(code)
	valid := code != "" && assistant.service.Resolvable(code)

	assistant.mu.Lock()
	defer assistant.mu.Unlock()

	if code == "" {
		editing := assistant.pending.Editing
		assistant.pending = emptyPending()
		assistant.pending.Editing = editing
		return assistant.pending.Stage
	}

	assistant.pending.Code = code
	assistant.pending.Stage = StageOptionsShown
	if !valid {
		assistant.pending.Stage = StageInvalid
	}
	return assistant.pending.Stage
}

// ChooseSize sets the pending size. Options are only available for a valid code.
func (assistant *Assistant) ChooseSize(size cart.Size) error {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()

	if err := assistant.optionsAvailable(); err != nil {
		return err
	}
	if !size.IsValid() {
		return invalid("size", MsgSelectSize)
	}
	assistant.pending.Size = size
	return nil
}

// ChooseQuantity sets the pending quantity, clamped to at least 1.
func (assistant *Assistant) ChooseQuantity(quantity int) error {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()

	if err := assistant.optionsAvailable(); err != nil {
		return err
	}
	assistant.pending.Quantity = min(max(1, quantity), cart.MaxQuantity)
	return nil
}

func (assistant *Assistant) optionsAvailable() error {
	switch assistant.pending.Stage {
	case StageOptionsShown:
		return nil
	case StageEmpty:
		return invalid("code", MsgEnterCode)
	default:
		return invalid("code", MsgUnavailableCode)
	}
}

/*
Submit adds the pending entry, or applies it to the line being edited.

On success the entry returns to Empty and the returned cart replaces the
loaded one. On failure the entry and the cart are left as they were.
*/
func (assistant *Assistant) Submit(context context.Context) (Cart, error) {
	assistant.mu.Lock()
	pending := assistant.pending
	owner := assistant.owner
	assistant.mu.Unlock()

	entry := cart.Entry{Code: pending.Code, Size: pending.Size, Quantity: pending.Quantity}
	if pending.Stage == StageInvalid {
		return Cart{}, invalid("code", MsgUnavailableCode)
	}

	return assistant.run(func() (Cart, error) {
		if pending.Editing != "" {
			return assistant.service.Update(context, owner, pending.Editing, entry)
		}
		return assistant.service.Add(context, owner, entry)
	}, func() {
		assistant.pending = emptyPending()
	})
}

// Edit loads a cart line into the pending entry. A line from the cart is
// always valid, so options are shown straight away.
func (assistant *Assistant) Edit(lineID string) error {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()

	index := cart.Find(assistant.lines, lineID)
	if index < 0 {
		return cart.ErrLineNotFound
	}
	line := assistant.lines[index]

	assistant.pending = Pending{
		Stage:    StageOptionsShown,
		Code:     line.Code,
		Size:     line.Size,
		Quantity: line.Quantity,
		Editing:  line.ID,
	}
	return nil
}

// CancelEdit discards the pending entry.
func (assistant *Assistant) CancelEdit() {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	assistant.pending = emptyPending()
}

// Remove drops a line and forgets its selection.
func (assistant *Assistant) Remove(context context.Context, lineID string) (Cart, error) {
	owner := assistant.Owner()

	return assistant.run(func() (Cart, error) {
		return assistant.service.Remove(context, owner, lineID)
	}, func() {
		delete(assistant.selected, lineID)
		if assistant.pending.Editing == lineID {
			assistant.pending = emptyPending()
		}
	})
}

// Clear empties the cart and the selection.
func (assistant *Assistant) Clear(context context.Context) (Cart, error) {
	owner := assistant.Owner()

	return assistant.run(func() (Cart, error) {
		return assistant.service.Clear(context, owner)
	}, func() {
		clear(assistant.selected)
		assistant.pending = emptyPending()
	})
}

// Load reads the owner's cart, falling back to the guest cart on network failure.
func (assistant *Assistant) Load(context context.Context) (Cart, error) {
	current, err := assistant.service.Lines(context, assistant.Owner())
	if err != nil {
		return Cart{}, err
	}
	assistant.replace(current.Lines)
	return current, nil
}

// run executes one mutation under the busy flag. onSuccess runs with the
// lock held, after the cart has been replaced.
func (assistant *Assistant) run(mutation func() (Cart, error), onSuccess func()) (Cart, error) {
	assistant.mu.Lock()
	if assistant.busy {
		assistant.mu.Unlock()
		return Cart{}, apperr.Conflict(MsgBusy)
	}
	assistant.busy = true
	assistant.mu.Unlock()

	result, err := mutation()

	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	assistant.busy = false

	if err != nil {
		return Cart{}, err
	}

	assistant.setLines(result.Lines)
	onSuccess()
	return result, nil
}

func (assistant *Assistant) replace(lines []cart.Line) {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	assistant.setLines(lines)
}

// setLines replaces the cart and drops selections of lines that are gone.
func (assistant *Assistant) setLines(lines []cart.Line) {
	assistant.lines = slices.Clone(lines)
	for id := range assistant.selected {
		if cart.Find(assistant.lines, id) < 0 {
			delete(assistant.selected, id)
		}
	}
}

// # Selection

// Toggle selects or deselects a line. It reports whether the line is now selected.
func (assistant *Assistant) Toggle(lineID string) (bool, error) {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()

	if cart.Find(assistant.lines, lineID) < 0 {
		return false, cart.ErrLineNotFound
	}
	if _, ok := assistant.selected[lineID]; ok {
		delete(assistant.selected, lineID)
		return false, nil
	}
	assistant.selected[lineID] = struct{}{}
	return true, nil
}

// SelectAll selects every loaded line.
func (assistant *Assistant) SelectAll() {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	for _, line := range assistant.lines {
		assistant.selected[line.ID] = struct{}{}
	}
}

// DeselectAll clears the selection.
func (assistant *Assistant) DeselectAll() {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	clear(assistant.selected)
}

// Selected returns the selected lines in cart order.
func (assistant *Assistant) Selected() []cart.Line {
	assistant.mu.Lock()
	defer assistant.mu.Unlock()

	picked := make([]cart.Line, 0, len(assistant.selected))
	for _, line := range assistant.lines {
		if _, ok := assistant.selected[line.ID]; ok {
			picked = append(picked, line)
		}
	}
	return picked
}

// SelectedTotal sums the selected lines.
func (assistant *Assistant) SelectedTotal() cart.Money {
	return cart.Total(assistant.Selected())
}

// Preview resolves the image of a loaded line.
func (assistant *Assistant) Preview(lineID string) (catalog.ImageView, error) {
	assistant.mu.Lock()
	index := cart.Find(assistant.lines, lineID)
	var code string
	if index >= 0 {
		code = assistant.lines[index].Code
	}
	assistant.mu.Unlock()

	if index < 0 {
		return catalog.ImageView{}, cart.ErrLineNotFound
	}
	return assistant.service.Preview(code)
}

// Checkout builds the order for the selected lines. The cart is not changed.
func (assistant *Assistant) Checkout() (Order, error) {
	selected := assistant.Selected()
	ids := make([]string, len(selected))
	for index, line := range selected {
		ids[index] = line.ID
	}
	return assistant.service.Checkout(selected, ids)
}

// # Session Events

/*
OnLogin switches the assistant to the account cart and merges the guest
cart into it.

Returns:
  - MergeResult: Status and the cart now shown
  - error: Expired session or unreadable guest storage
*/
func (assistant *Assistant) OnLogin(context context.Context, token string) (MergeResult, error) {
	assistant.mu.Lock()
	assistant.owner.Token = token
	owner := assistant.owner
	assistant.mu.Unlock()

	result, err := assistant.service.Merge(context, owner)
	if err != nil {
		return MergeResult{}, err
	}
	assistant.replace(result.Cart.Lines)
	return result, nil
}

// Resume shows the account cart of a restored session, or the guest cart when
// token is empty. Unlike [Assistant.OnLogin] it does not merge: the handoff
// happened at login.
func (assistant *Assistant) Resume(context context.Context, token string) (Cart, error) {
	assistant.mu.Lock()
	assistant.owner.Token = token
	assistant.mu.Unlock()

	return assistant.Load(context)
}

// OnLogout drops the account cart and shows the guest cart again.
func (assistant *Assistant) OnLogout(context context.Context) (Cart, error) {
	assistant.mu.Lock()
	assistant.owner.Token = ""
	assistant.lines = []cart.Line{}
	clear(assistant.selected)
	assistant.pending = emptyPending()
	assistant.mu.Unlock()

	return assistant.Load(context)
}
