package main

import (
	"os"

	"bennypowers.dev/wcaglint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
