package main

import "github.com/seqeyes/seqcheck/internal/cli"

func main() {
	cli.Execute()
}
