package main

import (
	"os"

	"github.com/eshaanmathakari/Datenschutz/internal/app"
)

func main() {
	if err := app.BuildRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
