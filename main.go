package main

import (
	"os"

	"ctfe/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
