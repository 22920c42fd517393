package main

import (
	"os"

	"github.com/vrsandeep/comicdl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
