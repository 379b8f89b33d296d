// Command catalogctl queries the coffee catalog from the terminal and
// maintains its dataset: integrity validation, fixture export and producer
// location checks.
//
// Usage:
//
//	catalogctl coffees --process Natural --price-max 20
//	catalogctl roaster artisan-roasters -o json
//	catalogctl validate --data-dir ./data
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
