// ABOUTME: Main entry point for the newslens CLI and API server
// ABOUTME: Delegates to the cobra command tree

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
