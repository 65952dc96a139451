// Package main is the single-binary entrypoint for Stepling.
// Stepling turns daily step counts into a pet that evolves — one binary,
// local data, no accounts.
package main

import "github.com/stepling-app/stepling/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
