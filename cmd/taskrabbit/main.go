package main

import (
	"fmt"
	"os"

	"github.com/grqphical/taskrabbit/internal/termstyle"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, termstyle.Detect(os.Stderr).ErrorPrefix(), err)
		os.Exit(1)
	}
}
