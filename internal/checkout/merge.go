// Copyright (c) 2026 PressArt. All rights reserved.

package checkout

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/pkg/slice"
)

// MergeStatus reports what happened to the guest cart at login.
type MergeStatus string

const (
	// MergeMerged means the guest lines now live in the account cart and the
	// guest cart was cleared.
	MergeMerged MergeStatus = "merged"

	// MergeGuestEmpty means there was nothing to hand off; the account cart
	// was loaded as is.
	MergeGuestEmpty MergeStatus = "guest_cart_empty"

	// MergeFailed means the sync call failed. The guest cart is untouched and
	// will be offered again at the next login.
	MergeFailed MergeStatus = "merge_failed"
)

// MergeResult is the outcome of [Service.Merge].
type MergeResult struct {
	Status MergeStatus `json:"status"`
	Merged int         `json:"merged"`
	Cart   Cart        `json:"cart"`
}

/*
Merge hands the guest cart to the account cart, at most once.

The merge holds the guest key as well as the account key, so a guest
mutation cannot slip a line in between the sync and the clear.

Steps:
 1. Read the guest cart once.
 2. Drop lines an earlier merge already synced but could not clear.
 3. Nothing left: load the account cart as is.
 4. Sync the rest upstream. Only after a successful sync is the guest cart
    cleared, and the returned cart replaces local state wholesale.
 5. Sync failure: keep the guest cart, fall back to a normal load.

Parameters:
  - owner: Owner (Must carry a token and the guest id to hand off)

Returns:
  - MergeResult: Status and the resulting cart
  - error: Only for failures that leave no cart to show (expired session,
    unreadable guest storage)
*/
func (service *Service) Merge(context context.Context, owner Owner) (MergeResult, error) {
	if !owner.Authenticated() {
		return MergeResult{}, apperr.Unauthorized("Login required")
	}

	release, ok := service.inflight.acquire(owner.key(), owner.guestKey())
	if !ok {
		return MergeResult{}, apperr.Conflict(MsgBusy)
	}

	// ── 1. Read the guest cart ─────────────────────────────────────────
	guestLines, err := service.guest.Lines(context, owner.GuestID)
	if err != nil {
		release()
		return MergeResult{}, err
	}

	// ── 2. Skip lines already upstream ─────────────────────────────────
	fresh := service.handoffs.unsynced(owner.GuestID, guestLines)

	// ── 3. Nothing to hand off ─────────────────────────────────────────
	if len(fresh) == 0 {
		if len(guestLines) > 0 {
			service.clearGuest(context, owner.GuestID, guestLines)
		}
		release()
		current, err := service.Lines(context, owner)
		if err != nil {
			return MergeResult{}, err
		}
		return MergeResult{Status: MergeGuestEmpty, Cart: current}, nil
	}

	// ── 4. Sync upstream ───────────────────────────────────────────────
	merged, err := service.store.SyncCart(context, owner.Token, fresh)
	if err != nil {
		release()
		if apperr.HasCode(err, apperr.CodeSessionExpired) {
			return MergeResult{}, err
		}

		// ── 5. Keep the guest cart, load normally ──────────────────────
		service.logger.Warn("cart_sync_failed",
			slog.Int("guest_lines", len(fresh)),
			slog.String("error", err.Error()),
		)
		current, loadErr := service.Lines(context, owner)
		if loadErr != nil {
			return MergeResult{}, loadErr
		}
		return MergeResult{Status: MergeFailed, Cart: current}, nil
	}
	defer release()

	service.clearGuest(context, owner.GuestID, guestLines)

	service.logger.Info("cart_merged", slog.Int("guest_lines", len(fresh)))
	return MergeResult{Status: MergeMerged, Merged: len(fresh), Cart: newCart(merged, SourceServer)}, nil
}

// clearGuest empties a guest cart whose lines are all upstream. When the
// clear fails the line ids are recorded so the next merge does not sync them
// again.
func (service *Service) clearGuest(context context.Context, guestID string, synced []cart.Line) {
	if err := service.guest.Clear(context, guestID); err != nil {
		service.handoffs.record(guestID, synced)
		service.logger.Error("guest_cart_clear_failed",
			slog.String("guest_id", guestID),
			slog.Int("synced_lines", len(synced)),
			slog.String("error", err.Error()),
		)
		return
	}
	service.handoffs.forget(guestID)
}

// handoffs remembers guest lines that reached the account cart while the
// guest cart could not be cleared.
type handoffs struct {
	mu     sync.Mutex
	synced map[string]map[string]struct{}
}

func newHandoffs() *handoffs {
	return &handoffs{synced: make(map[string]map[string]struct{})}
}

func (registry *handoffs) record(guestID string, lines []cart.Line) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	ids := registry.synced[guestID]
	if ids == nil {
		ids = make(map[string]struct{}, len(lines))
		registry.synced[guestID] = ids
	}
	for _, line := range lines {
		ids[line.ID] = struct{}{}
	}
}

func (registry *handoffs) forget(guestID string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.synced, guestID)
}

// unsynced returns the lines not yet handed to the account cart.
func (registry *handoffs) unsynced(guestID string, lines []cart.Line) []cart.Line {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	ids := registry.synced[guestID]
	return slice.Filter(lines, func(line cart.Line) bool {
		_, done := ids[line.ID]
		return !done
	})
}
