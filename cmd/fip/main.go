package main

import (
	"os"

	"github.com/fiplang/fip/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
