// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
)

// exitf writes a formatted message to stderr and exits with code.
func exitf(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
