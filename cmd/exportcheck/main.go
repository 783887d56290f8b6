package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/exportcheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		var issues *cli.IssuesError
		if errors.As(err, &issues) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
