/*
Package main is the entry point for the marketing-support CLI.

marketing-support turns a product link or photo into marketing content using a
hosted generative model, and keeps the 20 most recent plans locally.

Usage:
  marketing-support [command]

Available Commands:
  generate    Generate marketing content from a product link or photo
  visual      Generate (or regenerate) the product visual for a saved plan
  logo        Generate a brand logo
  history     List, show, export or clear saved plans
  settings    Manage user settings
  serve       Run the local JSON API for a browser front end
  config      Create and inspect configuration
  version     Show version information

Examples:
  # Content for a product page, with price and phone in the caption
  marketing-support generate --link https://shop.example/widget --price 5000 --phone 09123456

  # Content and a restyled product visual from a photo
  marketing-support generate --photo ./widget.jpg --visual

  # Serve the local API
  marketing-support serve
*/
package main

import (
	"fmt"
	"os"

	"github.com/khanglvm/marketing-support/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
