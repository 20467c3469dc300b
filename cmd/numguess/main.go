package main

import "github.com/numguess/numguess/internal/cli"

func main() {
	cli.Execute()
}
