// Command consultmatch serves the staffing API and runs offline team
// assembly against dataset files.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
