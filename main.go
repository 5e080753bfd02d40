package main

import (
	"os"

	"github.com/pension-board/retiree-intake/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
