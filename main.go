package main

import (
	"os"

	"github.com/26sneakysnake/Career-Compass/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
