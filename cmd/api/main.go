package main

import "github.com/sangkips/optica-api/internal/cli"

func main() {
	cli.Execute()
}
