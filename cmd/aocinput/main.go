// Package main provides the entry point for the aocinput CLI.
package main

import (
	cmd "github.com/rohmanhakim/aocinput/internal/cli"
)

func main() {
	cmd.Execute()
}
