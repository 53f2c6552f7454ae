package main

import "github.com/Skotchmaster/buket_shop/cmd/shop/commands"

func main() {
	commands.Execute()
}
