// Copyright (c) 2026 PressArt. All rights reserved.

// Command pressart is the terminal checkout assistant for the PressArt
// storefront: browse the catalog, resolve item codes, keep a cart, sign in and
// hand the order off to the shop's messaging channel.
//
// # State
//
// The guest cart and the session live as JSON files in the state directory
// (--state-dir, PRESSART_STATE_DIR, or <user config dir>/pressart).
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
