package main

import (
	"fmt"
	"os"

	"github.com/jeanpaul/swarm/internal/tui"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
