package main

import (
	"os"

	"github.com/crazythinker/studio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
