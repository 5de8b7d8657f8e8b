package main

import "github.com/forPelevin/keysubs/internal/cli"

func main() {
	cli.Main()
}
