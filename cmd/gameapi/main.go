package main

import "github.com/mcoot/gameapi-e2e/internal/cli"

func main() {
	cli.Execute()
}
