// Package main is the entry point for the nlquery CLI application.
package main

import (
	"nlquery/cli/cmd"
)

// main initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
