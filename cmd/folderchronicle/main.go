package main

import (
	"os"

	"github.com/bianoble/folderchronicle/cmd/folderchronicle/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
