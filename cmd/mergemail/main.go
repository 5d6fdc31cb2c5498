package main

import "github.com/mergekit/mergemail/internal/cli"

func main() {
	cli.Execute()
}
