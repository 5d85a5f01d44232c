// Copyright (c) 2026 PressArt. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pressart/storefront/internal/checkout"
)

func newLoginCmd(cli *app) *cobra.Command {
	var credential string

	command := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a Google ID token",
		Long: `Sign in with a Google ID token (the "credential" returned by Google
Sign-In). Use --credential - to read it from stdin.

Any prints in your local cart are moved to your account cart once the
session starts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if credential == "-" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && err != io.EOF {
					return err
				}
				credential = line
			}

			state, err := cli.sessions.LoginWithGoogle(cmd.Context(), strings.TrimSpace(credential))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Welcome, %s!\n", state.User.DisplayName())
			printMerge(out, cli.lastMerge, cli.lastMergeErr)
			return nil
		},
	}

	command.Flags().StringVar(&credential, "credential", "", "Google ID token, or - for stdin")
	_ = command.MarkFlagRequired("credential")
	return command
}

func printMerge(out io.Writer, result checkout.MergeResult, err error) {
	switch {
	case err != nil:
		fmt.Fprintf(out, "Your local cart was kept: %s\n", err)
	case result.Status == checkout.MergeMerged:
		fmt.Fprintf(out, "Moved %d local items to your account cart.\n", result.Merged)
	case result.Status == checkout.MergeFailed:
		fmt.Fprintln(out, "Could not move your local cart yet; it is kept for the next login.")
	}
}

func newLogoutCmd(cli *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cli.sessions.Current() == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			if err := cli.sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(cli *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in shopper",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := cli.sessions.Current()
			if state == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in (guest cart).")
				return nil
			}
			user := state.User
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s <%s>\n", user.Initials(), user.Name, user.Email)
			return nil
		},
	}
}
