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
