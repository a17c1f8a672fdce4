// Package main provides the entry point for the lathecam CLI.
package main

import (
	"errors"
	"os"

	"lathecam/internal/app"
)

func main() {
	if err := Execute(); err != nil {
		if errors.Is(err, app.ErrUnsupported) {
			os.Exit(2)
		}
		printError(err)
		os.Exit(1)
	}
}
