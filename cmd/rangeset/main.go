package main

import (
	"os"

	"github.com/henderiw/rangeset/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
