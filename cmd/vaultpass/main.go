package main

import (
	"os"

	"github.com/vaultpass/vaultpass-client/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
