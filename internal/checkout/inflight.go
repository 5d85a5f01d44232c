// Copyright (c) 2026 PressArt. All rights reserved.

package checkout

import "sync"

// inflight allows one outstanding cart mutation per key. A second request
// for a held key is rejected, not queued, so a double submit cannot add a
// line twice. A merge holds both the account and the guest key.
type inflight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{keys: make(map[string]struct{})}
}

// acquire takes every key or none.
func (guard *inflight) acquire(keys ...string) (func(), bool) {
	guard.mu.Lock()
	defer guard.mu.Unlock()

	for _, key := range keys {
		if _, busy := guard.keys[key]; busy {
			return nil, false
		}
	}
	for _, key := range keys {
		guard.keys[key] = struct{}{}
	}

	return func() {
		guard.mu.Lock()
		for _, key := range keys {
			delete(guard.keys, key)
		}
		guard.mu.Unlock()
	}, true
}
