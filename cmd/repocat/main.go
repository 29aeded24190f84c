package main

import (
	"os"

	"github.com/felixgeelhaar/repocat/internal/infrastructure/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
