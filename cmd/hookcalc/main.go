// Command hookcalc drives a plugin-extended calculator from the command line.
//
// Usage:
//
//	hookcalc demo
//	hookcalc eval plus:10 minus:5 press:squared press:multiply:2
//	hookcalc --config calc.yaml eval set:3 press:sqrt
//	hookcalc tape --path ./tape.db
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hookcalc:", err)
		os.Exit(1)
	}
}
