package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/CatalogGoat/internal/classifier"
	"github.com/IshaanNene/CatalogGoat/internal/config"
)

// classifyCmd creates the "classify" subcommand.
func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <url> [name...]",
		Short: "Show which category a page or product falls into",
		Long: `Run the category rules against a URL and an optional product name.
Name rules are tried first, then URL path segments.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawURL := args[0]
			name := strings.Join(args[1:], " ")
			out := cmd.OutOrStdout()

			if name != "" {
				if c, ok := classifier.ByName(name); ok {
					fmt.Fprintf(out, "by name:  %s\n", c)
				} else {
					fmt.Fprintln(out, "by name:  (no match)")
				}
			}
			if c, ok := classifier.ByURL(rawURL); ok {
				fmt.Fprintf(out, "by url:   %s\n", c)
			} else {
				fmt.Fprintln(out, "by url:   (no match)")
			}

			c, ok := classifier.Classify(rawURL, name)
			if !ok {
				fmt.Fprintln(out, "category: unclassified")
				return nil
			}
			fmt.Fprintf(out, "category: %s\n", c)
			return nil
		},
	}
}

// categoriesCmd creates the "categories" subcommand.
func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the configured storefront categories",
		Long: `List the configured storefront categories. Categories that no
classification rule produces are flagged; they only ever receive products
through a page slug match.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			known := make(map[string]bool)
			for _, c := range classifier.Taxonomy() {
				known[string(c)] = true
			}

			out := cmd.OutOrStdout()
			for _, c := range cfg.Catalog.Categories {
				line := fmt.Sprintf("%-36s %-20s %s", c.Name, c.Slug, c.URL)
				if !known[c.Name] {
					line += "  (no rules)"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
