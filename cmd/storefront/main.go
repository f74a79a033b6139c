// Command storefront runs the storefront listing API.
//
// Usage:
//
//	# Apply pending database migrations
//	storefront migrate
//
//	# Start the HTTP server
//	storefront serve
//
// Configuration is read from STOREFRONT_* environment variables and an
// optional .env file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
