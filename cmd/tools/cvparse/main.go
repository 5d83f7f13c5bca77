package main

import (
	"errors"
	"fmt"
	"os"

	"cv-normalizer/internal/cv"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if kind := cv.KindName(err); kind != "" {
			fmt.Fprintf(os.Stderr, "%s: %v\n", kind, err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		var pe *cv.ParseError
		if errors.As(err, &pe) {
			for _, a := range pe.Attempts() {
				fmt.Fprintln(os.Stderr, "  tried", a)
			}
		}
		os.Exit(1)
	}
}
