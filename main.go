package main

import (
	"os"

	"rulecanvas/internal/app"
)

func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
