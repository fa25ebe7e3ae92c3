package main

import "bloghub/cmd/cli/command"

func main() {
	command.Execute()
}
