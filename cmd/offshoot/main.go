package main

import (
	"os"

	"github.com/naoray/offshoot/internal/cli"
)

// These variables are set at build time via -ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	os.Exit(cli.Execute())
}
