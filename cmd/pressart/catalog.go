// Copyright (c) 2026 PressArt. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pressart/storefront/internal/catalog"
	"github.com/pressart/storefront/pkg/pagination"
)

func newCategoriesCmd(cli *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the catalog categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(table, "ID\tCODE\tITEMS\tNAME")
			for _, category := range cli.catalog.Categories() {
				fmt.Fprintf(table, "%s\t%s-NN\t%d\t%s\n", category.ID, category.CodePrefix, category.ItemCount, category.Name)
			}
			return table.Flush()
		},
	}
}

func newCodesCmd(cli *app) *cobra.Command {
	codes := &cobra.Command{
		Use:   "codes",
		Short: "Convert between item codes and catalog positions",
	}

	codes.AddCommand(&cobra.Command{
		Use:     "encode <category> <position>",
		Short:   "Print the item code of a category position",
		Example: "  pressart codes encode dc-heroes 7",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("position must be a number: %q", args[1])
			}
			code, err := cli.catalog.Registry().Encode(args[0], position)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	})

	codes.AddCommand(&cobra.Command{
		Use:     "decode <code>",
		Short:   "Resolve an item code to its image",
		Example: "  pressart codes decode PAINTINGS-32",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := cli.catalog.Resolve(args[0])
			if err != nil {
				return err
			}
			printImage(cmd, image)
			return nil
		},
	})

	return codes
}

func printImage(cmd *cobra.Command, image catalog.ImageView) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Code:     %s\n", image.Code)
	fmt.Fprintf(out, "Category: %s (#%d)\n", image.CategoryID, image.Position)
	if image.Title != "" {
		fmt.Fprintf(out, "Title:    %s\n", image.Title)
	}
	fmt.Fprintf(out, "Path:     %s\n", image.Path)
	fmt.Fprintf(out, "URL:      %s\n", image.URL)
}

func newURLsCmd(cli *app) *cobra.Command {
	var page, limit int

	command := &cobra.Command{
		Use:   "urls <category>",
		Short: "List the image URLs of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := pagination.Params{Page: max(page, 1), Limit: min(max(limit, 1), pagination.MaxLimit)}
			images, meta, err := cli.catalog.Listing(args[0], params)
			if err != nil {
				return err
			}

			table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, image := range images {
				fmt.Fprintf(table, "%s\t%s\n", image.Code, image.URL)
			}
			if err := table.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d, %d images\n", meta.Page, meta.TotalPages, meta.Total)
			return nil
		},
	}

	command.Flags().IntVar(&page, "page", pagination.DefaultPage, "Page number")
	command.Flags().IntVar(&limit, "limit", pagination.MaxLimit, "Images per page")
	return command
}
