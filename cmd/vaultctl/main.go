// Command vaultctl administers a QuoteVault record store: it creates the
// schema, loads quotes from YAML and prints the quote of the day.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newCLI()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
