// Package cmd provides the command-line interface for the turniptext demo
// binary: a thin smoke-test harness around internal/turnipparse, itself a
// Non-goal of the core spec (spec.md §1 excludes "the CLI" from scope).
package cmd

import (
	kongcompletion "github.com/jotaen/kong-completion"
)

// CLI is the root command structure for Kong.
type CLI struct {
	Parse      ParseCmd                  `cmd:"" help:"Parse a turnip_text source file and print its document tree"`
	Completion kongcompletion.Completion `cmd:"" help:"Generate shell completions"`
}
