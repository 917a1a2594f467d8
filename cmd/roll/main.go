package main

import (
	"flag"
	"os"

	"github.com/Kartagia/diceodel/internal/platform/config"
	"github.com/Kartagia/diceodel/internal/tools/roll"
)

func main() {
	cfg, err := roll.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := roll.Run(cfg, os.Stdout); err != nil {
		config.Exitf("roll dice: %v", err)
	}
}
