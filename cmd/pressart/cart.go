// Copyright (c) 2026 PressArt. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/checkout"
)

func newCartCmd(cli *app) *cobra.Command {
	command := &cobra.Command{
		Use:   "cart",
		Short: "Show and change your cart",
		Long: `Show and change your cart.

Without a session the cart is kept on this machine. After login it lives in
your store account; the local cart is merged into it once, at login.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := cli.loadCart(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), current)
			return nil
		},
	}

	command.AddCommand(
		newCartListCmd(cli),
		newCartAddCmd(cli),
		newCartEditCmd(cli),
		newCartRemoveCmd(cli),
		newCartClearCmd(cli),
		newCartSelectCmd(cli),
		newCartCheckoutCmd(cli),
	)
	return command
}

func newCartListCmd(cli *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the cart",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := cli.loadCart(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), current)
			return nil
		},
	}
}

func newCartAddCmd(cli *app) *cobra.Command {
	var size string
	var quantity int

	command := &cobra.Command{
		Use:     "add <code>",
		Short:   "Add a print to the cart",
		Example: "  pressart cart add PAINTINGS-32 --size M --quantity 2",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cli.loadCart(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}

			code := ""
			if len(args) == 1 {
				code = args[0]
			}
			cli.assistant.EnterCode(code)
			if err := cli.assistant.ChooseSize(parseSize(size)); err != nil {
				return err
			}
			if err := cli.assistant.ChooseQuantity(quantity); err != nil {
				return err
			}

			current, err := cli.assistant.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to your cart.\n", strings.TrimSpace(code))
			printCart(cmd.OutOrStdout(), current)
			return nil
		},
	}

	command.Flags().StringVarP(&size, "size", "s", "", "Print size: "+strings.Join(cart.SizeCodes(), ", "))
	command.Flags().IntVarP(&quantity, "quantity", "q", 1, "Number of prints")
	return command
}

func newCartEditCmd(cli *app) *cobra.Command {
	var code, size string
	var quantity int

	command := &cobra.Command{
		Use:   "edit <line-id>",
		Short: "Change the code, size or quantity of a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cli.loadCart(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			if err := cli.assistant.Edit(args[0]); err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("code") {
				cli.assistant.EnterCode(code)
			}
			if flags.Changed("size") {
				if err := cli.assistant.ChooseSize(parseSize(size)); err != nil {
					return err
				}
			}
			if flags.Changed("quantity") {
				if err := cli.assistant.ChooseQuantity(quantity); err != nil {
					return err
				}
			}

			current, err := cli.assistant.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cart updated.")
			printCart(cmd.OutOrStdout(), current)
			return nil
		},
	}

	command.Flags().StringVar(&code, "code", "", "New item code")
	command.Flags().StringVarP(&size, "size", "s", "", "New print size")
	command.Flags().IntVarP(&quantity, "quantity", "q", 1, "New quantity")
	return command
}

func newCartRemoveCmd(cli *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <line-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a line from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cli.loadCart(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			current, err := cli.assistant.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), current)
			return nil
		},
	}
}

func newCartClearCmd(cli *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := cli.loadCart(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			if _, err := cli.assistant.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Your cart is empty.")
			return nil
		},
	}
}

func newCartSelectCmd(cli *app) *cobra.Command {
	var all bool

	command := &cobra.Command{
		Use:   "select [line-id...]",
		Short: "Show the subtotal of some cart lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cli.loadCart(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			if err := selectLines(cli.assistant, args, all); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, line := range cli.assistant.Selected() {
				fmt.Fprintf(out, "  [x] %s\n", formatLine(line))
			}
			fmt.Fprintf(out, "Selected: %s\n", cli.assistant.SelectedTotal())
			return nil
		},
	}

	command.Flags().BoolVar(&all, "all", false, "Select every line")
	return command
}

func newCartCheckoutCmd(cli *app) *cobra.Command {
	var all bool

	command := &cobra.Command{
		Use:   "checkout [line-id...]",
		Short: "Build the order message for the selected lines",
		Long: `Build the order message for the selected lines and print the link that
sends it to the shop. The cart itself is not changed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := cli.loadCart(cmd.Context(), cmd.ErrOrStderr()); err != nil {
				return err
			}
			if err := selectLines(cli.assistant, args, all); err != nil {
				return err
			}

			order, err := cli.assistant.Checkout()
			if err != nil {
				return err
			}
			printOrder(cmd.OutOrStdout(), order)
			return nil
		},
	}

	command.Flags().BoolVar(&all, "all", false, "Check out every line")
	return command
}

// # Helpers

func parseSize(value string) cart.Size {
	return cart.Size(strings.ToUpper(strings.TrimSpace(value)))
}

func selectLines(assistant *checkout.Assistant, ids []string, all bool) error {
	if all {
		assistant.SelectAll()
		return nil
	}
	for _, id := range ids {
		if _, err := assistant.Toggle(id); err != nil {
			return err
		}
	}
	return nil
}

func formatLine(line cart.Line) string {
	return fmt.Sprintf("%s  %s  x%d  %s  (id %s)", line.Code, line.Size.Name(), line.Quantity, line.Total, line.ID)
}

func printCart(out io.Writer, current checkout.Cart) {
	if len(current.Lines) == 0 {
		fmt.Fprintln(out, "Your cart is empty.")
		return
	}
	for index, line := range current.Lines {
		fmt.Fprintf(out, "%d. %s\n", index+1, formatLine(line))
	}
	fmt.Fprintf(out, "Total: %s (%d items, %s cart)\n", current.Total, current.Count, current.Source)
}

func printOrder(out io.Writer, order checkout.Order) {
	fmt.Fprintln(out, order.Message)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Send your order:")
	fmt.Fprintln(out, order.URL)
}
