package main

import (
	"log"

	"github.com/ramanasai/tally/cmd"
	"github.com/ramanasai/tally/internal/version"
)

// Build metadata injected by goreleaser or makefile
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

func init() {
	// Set version info
	version.Version = buildVersion
	version.Commit = buildCommit
	version.Date = buildDate
}

func main() {
	log.SetFlags(0)
	if err := cmd.Execute(); err != nil {
		log.Fatalf("tally: %v", err)
	}
}
