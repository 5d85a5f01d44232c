// Copyright (c) 2026 PressArt. All rights reserved.

package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/pkg/slice"
)

// Channel is the messaging deep link an order is handed to, e.g.
// https://wa.me/ with a phone number.
type Channel struct {
	BaseURL string
	Phone   string
}

// Order is a checkout hand-off. Building one never touches the cart.
type Order struct {
	Lines   []cart.Line `json:"items"`
	Total   cart.Money  `json:"total"`
	Message string      `json:"message"`
	URL     string      `json:"url"`
}

/*
Checkout packages the selected lines into an order message.

Lines keep their cart order; ids in selected that name no line are ignored.

Returns:
  - Order: The message and its deep link
  - error: VALIDATION_ERROR when nothing is selected
*/
func (service *Service) Checkout(lines []cart.Line, selected []string) (Order, error) {
	chosen := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}

	picked := slice.Filter(lines, func(line cart.Line) bool {
		_, ok := chosen[line.ID]
		return ok
	})
	if len(picked) == 0 {
		return Order{}, invalid("items", MsgSelectItems)
	}

	total := cart.Total(picked)
	message := OrderMessage(picked, total)

	return Order{
		Lines:   picked,
		Total:   total,
		Message: message,
		URL:     service.channel.URL(message),
	}, nil
}

// OrderMessage renders the order text sent to the shop.
func OrderMessage(lines []cart.Line, total cart.Money) string {
	items := make([]string, len(lines))
	for index, line := range lines {
		items[index] = fmt.Sprintf("%d. %s\n   Size: %s (%s)\n   Quantity: %d\n   Price: %s\n",
			index+1, line.Code, line.Size, line.Size.Name(), line.Quantity, line.Total)
	}

	return "Hi! I'd like to order the following items:\n\n" +
		strings.Join(items, "\n") +
		"\n\nTotal: " + total.String() +
		"\n\nThank you!"
}

// URL builds the deep link carrying message as its text parameter.
func (channel Channel) URL(message string) string {
	return channel.BaseURL + channel.Phone + "?text=" + encodeComponent(message)
}

// componentReplacer turns query escaping into URI component escaping:
// spaces become %20 and the marks !'()* stay literal.
var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(value string) string {
	return componentReplacer.Replace(url.QueryEscape(value))
}
