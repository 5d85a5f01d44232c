// Copyright (c) 2026 PressArt. All rights reserved.

package storeapi

import (
	"context"
	"net/http"

	"github.com/pressart/storefront/internal/cart"
)

// # Authenticated Cart
//
// Every mutation answers with the whole cart. Callers replace their state
// with it wholesale.

type lineRequest struct {
	Code     string     `json:"code,omitempty"`
	Size     cart.Size  `json:"size"`
	Quantity int        `json:"quantity"`
	Price    cart.Money `json:"price"`
}

type syncRequest struct {
	LocalCartItems []cart.Line `json:"localCartItems"`
}

func toRequest(line cart.Line) lineRequest {
	return lineRequest{Code: line.Code, Size: line.Size, Quantity: line.Quantity, Price: line.Price}
}

// Cart fetches the authenticated cart.
func (client *Client) Cart(context context.Context, token string) ([]cart.Line, error) {
	body, err := client.call(context, http.MethodGet, "/cart", token, nil)
	if err != nil {
		return nil, err
	}
	return body.lines(), nil
}

// AddLine appends a priced line.
func (client *Client) AddLine(context context.Context, token string, line cart.Line) ([]cart.Line, error) {
	body, err := client.call(context, http.MethodPost, "/cart/add", token, toRequest(line))
	if err != nil {
		return nil, err
	}
	return body.lines(), nil
}

// UpdateLine replaces the fields of the line with lineID.
func (client *Client) UpdateLine(context context.Context, token, lineID string, line cart.Line) ([]cart.Line, error) {
	body, err := client.call(context, http.MethodPut, linePath("update", lineID), token, toRequest(line))
	if err != nil {
		return nil, err
	}
	return body.lines(), nil
}

// RemoveLine drops the line with lineID.
func (client *Client) RemoveLine(context context.Context, token, lineID string) ([]cart.Line, error) {
	body, err := client.call(context, http.MethodDelete, linePath("remove", lineID), token, nil)
	if err != nil {
		return nil, err
	}
	return body.lines(), nil
}

// ClearCart empties the authenticated cart.
func (client *Client) ClearCart(context context.Context, token string) ([]cart.Line, error) {
	body, err := client.call(context, http.MethodDelete, "/cart/clear", token, nil)
	if err != nil {
		return nil, err
	}
	return body.lines(), nil
}

/*
SyncCart merges guest lines into the authenticated cart.

The call is not idempotent: sending the same lines twice adds them twice.
Callers must clear the guest cart only after this returns successfully.
*/
func (client *Client) SyncCart(context context.Context, token string, lines []cart.Line) ([]cart.Line, error) {
	if lines == nil {
		lines = []cart.Line{}
	}
	body, err := client.call(context, http.MethodPost, "/cart/sync", token, syncRequest{LocalCartItems: lines})
	if err != nil {
		return nil, err
	}
	return body.lines(), nil
}
