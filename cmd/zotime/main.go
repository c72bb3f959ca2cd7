package main

import (
	"fmt"
	"os"

	"github.com/ngrash/zotime/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zotime:", err)
		os.Exit(1)
	}
}
