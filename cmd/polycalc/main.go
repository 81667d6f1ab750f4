// polycalc is an interactive calculator for integer polynomials.
//
// Usage:
//
//	polycalc                       start the REPL
//	polycalc --file exprs.txt      start the REPL with Exp1/Exp2 loaded
//	polycalc calc mul "1x^1 +1x^0" "1x^1 -1x^0"
//	polycalc eval "2x^2 +3x^0" 5
package main

import (
	"os"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
