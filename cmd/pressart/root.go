// Copyright (c) 2026 PressArt. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/catalog"
	"github.com/pressart/storefront/internal/checkout"
	"github.com/pressart/storefront/internal/media"
	"github.com/pressart/storefront/internal/platform/apperr"
	"github.com/pressart/storefront/internal/platform/config"
	"github.com/pressart/storefront/internal/session"
	"github.com/pressart/storefront/internal/storeapi"
)

// MsgSessionExpired is shown whenever a saved or live session has expired.
const MsgSessionExpired = "Session expired. Please log in again."

// app holds the wiring shared by every command. It is built once per
// invocation in the root command's PersistentPreRunE.
type app struct {
	// Flags
	verbose   bool
	ephemeral bool
	stateDir  string

	cfg       *config.Config
	logger    *slog.Logger
	catalog   *catalog.Service
	sessions  *session.Manager
	assistant *checkout.Assistant

	// lastMerge is the outcome of the merge run by the login listener.
	lastMerge    checkout.MergeResult
	lastMergeErr error
}

func newRootCmd() *cobra.Command {
	cli := &app{}

	root := &cobra.Command{
		Use:   "pressart",
		Short: "PressArt checkout assistant",
		Long: `Browse the PressArt catalog, resolve item codes and build an order.

Paste an item code (e.g. PAINTINGS-32) to add a print to your cart, pick a
size and quantity, then checkout to get a message link for the shop.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.setup(cmd.Context(), cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	root.PersistentFlags().BoolVar(&cli.ephemeral, "ephemeral", false, "Keep the guest cart in memory for this run only")
	root.PersistentFlags().StringVar(&cli.stateDir, "state-dir", "", "Directory for the guest cart and session files")

	root.AddCommand(
		newCategoriesCmd(cli),
		newCodesCmd(cli),
		newURLsCmd(cli),
		newCartCmd(cli),
		newLoginCmd(cli),
		newLogoutCmd(cli),
		newWhoamiCmd(cli),
		newChatCmd(cli),
	)
	return root
}

/*
setup wires the assistant for one invocation.

Steps:
 1. Logger (text on stderr, warn level unless --verbose).
 2. Configuration and state directory.
 3. Catalog and image CDN strategy.
 4. Guest cart, store API client, checkout workflow.
 5. Session manager, restored from disk; an expired session is reported and
    dropped.
*/
func (cli *app) setup(ctx context.Context, stderr io.Writer) error {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	level := slog.LevelWarn
	if cli.verbose {
		level = slog.LevelDebug
	}
	cli.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cli.cfg = cfg

	dir, err := cli.resolveStateDir()
	if err != nil {
		return err
	}
	cli.logger.Debug("state_dir_resolved", slog.String("dir", dir))

	// ── 3. Catalog ────────────────────────────────────────────────────────
	registry, err := catalog.NewRegistry(cli.logger, catalog.Seed())
	if err != nil {
		return err
	}
	urls, err := media.New(cfg)
	if err != nil {
		return err
	}
	cli.catalog = catalog.NewService(registry, urls)

	// ── 4. Cart Wiring ────────────────────────────────────────────────────
	var guestStore cart.GuestStore = cart.NewMemoryStore()
	if !cli.ephemeral {
		fileStore, err := cart.NewFileStore(dir, cli.logger)
		if err != nil {
			return err
		}
		guestStore = fileStore
	}

	store := storeapi.New(cfg.StoreAPIBaseURL, cfg.StoreAPITimeout, cli.logger)
	service := checkout.NewService(cli.catalog, store, cart.NewGuest(guestStore, nil),
		checkout.Channel{BaseURL: cfg.CheckoutBaseURL, Phone: cfg.CheckoutPhone}, cli.logger)

	// The CLI has a single guest cart, so the guest id is empty.
	cli.assistant = checkout.NewAssistant(service, "")

	// ── 5. Session ────────────────────────────────────────────────────────
	sessionStore, err := session.NewFileStore(dir, cli.logger)
	if err != nil {
		return err
	}
	cli.sessions = session.NewManager(store, sessionStore, cli.logger, nil)

	cli.sessions.OnLogin(func(context context.Context, state session.State) {
		cli.lastMerge, cli.lastMergeErr = cli.assistant.OnLogin(context, state.Token)
	})
	cli.sessions.OnLogout(func(context context.Context) {
		if _, err := cli.assistant.OnLogout(context); err != nil {
			cli.logger.Warn("guest_cart_reload_failed", slog.String("error", err.Error()))
		}
	})

	if _, err := cli.sessions.Restore(ctx); apperr.HasCode(err, apperr.CodeSessionExpired) {
		fmt.Fprintln(stderr, MsgSessionExpired)
	} else if err != nil {
		return err
	}
	return nil
}

func (cli *app) resolveStateDir() (string, error) {
	if cli.stateDir != "" {
		return cli.stateDir, nil
	}
	if cli.cfg.StateDir != "" {
		return cli.cfg.StateDir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("state_dir_resolve_failed: %w", err)
	}
	return filepath.Join(base, "pressart"), nil
}

// loadCart reads the cart of the current session, or the guest cart, into the
// assistant. A session rejected upstream is logged out and the guest cart is
// shown instead.
func (cli *app) loadCart(context context.Context, stderr io.Writer) (checkout.Cart, error) {
	current, err := cli.assistant.Resume(context, cli.sessions.Token())
	if apperr.HasCode(err, apperr.CodeSessionExpired) {
		fmt.Fprintln(stderr, MsgSessionExpired)
		_ = cli.sessions.Logout(context)
		return cli.assistant.Load(context)
	}
	return current, err
}
