// Copyright (c) 2026 PressArt. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/checkout"
)

const chatHelp = `Paste an item code (e.g. PAINTINGS-32) to start, then:
  size <S|M|L|XL>     choose the print size
  qty <n>             choose the quantity
  add                 add the print (or save the edited line)
  edit <id>           load a cart line for editing
  cancel              drop the pending entry
  remove <id>         remove a cart line
  cart                show the cart
  select <id|all|none>  toggle lines for checkout
  preview <id>        show the image of a cart line
  checkout            build the order for the selected lines
  clear               empty the cart
  quit                leave`

// lockedWriter serializes writes from the prompt loop and the session watcher.
type lockedWriter struct {
	mu  sync.Mutex
	out io.Writer
}

func (writer *lockedWriter) Write(data []byte) (int, error) {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	return writer.out.Write(data)
}

func newChatCmd(cli *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive checkout assistant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := &lockedWriter{out: cmd.OutOrStdout()}

			ctx, cancel := context.WithCancel(cmd.Context())

			if _, err := cli.loadCart(ctx, out); err != nil {
				fmt.Fprintln(out, err)
			}

			// ── Session expiry watcher ─────────────────────────────────────
			var watching sync.WaitGroup
			watching.Add(1)
			go func() {
				defer watching.Done()
				for range cli.sessions.Watch(ctx, cli.cfg.SessionCheckInterval) {
					fmt.Fprintln(out, MsgSessionExpired)
				}
			}()
			defer watching.Wait()
			defer cancel()

			fmt.Fprintln(out, "Hi! Paste an item code to start. Type 'help' for commands.")
			return runChat(ctx, cli, cmd.InOrStdin(), out)
		},
	}
}

// runChat reads commands until EOF or quit.
func runChat(context context.Context, cli *app, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		if err := chatStep(context, cli, line, out); err != nil {
			fmt.Fprintln(out, err)
		}
	}
}

func chatStep(context context.Context, cli *app, line string, out io.Writer) error {
	verb, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	assistant := cli.assistant

	switch strings.ToLower(verb) {
	case "help":
		fmt.Fprintln(out, chatHelp)

	case "size":
		if err := assistant.ChooseSize(parseSize(arg)); err != nil {
			return err
		}
		printPending(out, assistant.Pending())

	case "qty", "quantity":
		quantity, err := strconv.Atoi(arg)
		if err != nil {
			return errors.New("quantity must be a number")
		}
		if err := assistant.ChooseQuantity(quantity); err != nil {
			return err
		}
		printPending(out, assistant.Pending())

	case "add", "ok", "save":
		editing := assistant.Pending().Editing != ""
		current, err := assistant.Submit(context)
		if err != nil {
			return err
		}
		if editing {
			fmt.Fprintln(out, "Cart updated.")
		} else {
			fmt.Fprintln(out, "Added to your cart.")
		}
		printCart(out, current)

	case "edit":
		if err := assistant.Edit(arg); err != nil {
			return err
		}
		printPending(out, assistant.Pending())

	case "cancel":
		assistant.CancelEdit()
		fmt.Fprintln(out, "Entry cleared.")

	case "remove", "rm":
		current, err := assistant.Remove(context, arg)
		if err != nil {
			return err
		}
		printCart(out, current)

	case "cart", "list":
		current, err := cli.loadCart(context, out)
		if err != nil {
			return err
		}
		printCart(out, current)

	case "select":
		switch arg {
		case "all":
			assistant.SelectAll()
		case "none":
			assistant.DeselectAll()
		default:
			if _, err := assistant.Toggle(arg); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "%d selected, %s\n", len(assistant.Selected()), assistant.SelectedTotal())

	case "preview":
		image, err := assistant.Preview(arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n%s\n", image.Alt, image.URL)

	case "checkout":
		order, err := assistant.Checkout()
		if err != nil {
			return err
		}
		printOrder(out, order)

	case "clear":
		if _, err := assistant.Clear(context); err != nil {
			return err
		}
		fmt.Fprintln(out, "Your cart is empty.")

	case "code":
		return enterCode(cli, arg, out)

	default:
		return enterCode(cli, line, out)
	}
	return nil
}

func enterCode(cli *app, code string, out io.Writer) error {
	switch cli.assistant.EnterCode(code) {
	case checkout.StageEmpty:
		return errors.New(checkout.MsgEnterCode)
	case checkout.StageInvalid:
		return errors.New(checkout.MsgUnavailableCode)
	}

	image, err := cli.catalog.Resolve(code)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n%s\n", image.Alt, image.URL)
	for _, size := range cart.Sizes() {
		fmt.Fprintf(out, "  %-2s %s %s\n", size, size.Name(), size.Price())
	}
	printPending(out, cli.assistant.Pending())
	return nil
}

func printPending(out io.Writer, pending checkout.Pending) {
	size := "none"
	if pending.Size != "" {
		size = string(pending.Size)
	}
	action := "add"
	if pending.Editing != "" {
		action = "save line " + pending.Editing
	}
	fmt.Fprintf(out, "%s: size %s, qty %d. Type 'add' to %s.\n", pending.Code, size, pending.Quantity, action)
}
