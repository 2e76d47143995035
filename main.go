// Package main is the entry point for the rfv application
package main

import (
	"github.com/ethpandaops/rfv/cmd"
)

func main() {
	cmd.Execute()
}
