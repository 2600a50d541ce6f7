package main

import "github.com/hamtools/rt4dflash/cmd"

func main() {
	cmd.Execute()
}
