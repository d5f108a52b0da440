package main

import (
	"fmt"
	"os"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  simple run [--max-steps N] [--quiet] <program.yml>")
	fmt.Fprintln(os.Stderr, "  simple [--max-steps N] [--quiet] <program.yml>")
	fmt.Fprintln(os.Stderr, "  simple check <program.yml> [program.yml ...]")
	fmt.Fprintln(os.Stderr, "  simple test <program.yml> [program.yml ...]")
	fmt.Fprintln(os.Stderr, "  simple --version")
}
