package main

import "github.com/livp123/edjournal/cmd/edjournal/commands"

func main() {
	commands.Execute()
}
