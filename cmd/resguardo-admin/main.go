package main

import (
	"github.com/resguardo/resguardo/cmd/cli"
)

func main() {
	cli.Execute()
}
