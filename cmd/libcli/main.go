package main

import "library-client/cmd/libcli/commands"

func main() {
	commands.Execute()
}
