package main

import "github.com/raidledger/raidledger/cmd"

func main() {
	cmd.Execute()
}
