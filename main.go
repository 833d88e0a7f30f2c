// main.go
//
// Entry point for disk-sim; run, compare and defaults live in cmd/root.go

package main

import (
	"github.com/inference-sim/disk-sim/cmd"
)

func main() {
	cmd.Execute()
}
