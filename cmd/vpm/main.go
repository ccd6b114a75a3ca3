package main

import "github.com/tkc/vibe-pm/internal/cli"

func main() {
	cli.Execute()
}
