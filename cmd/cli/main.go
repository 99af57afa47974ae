package main

import (
	"event-inbox/cmd/cli/cmd"
)

func main() {
	cmd.Execute()
}
