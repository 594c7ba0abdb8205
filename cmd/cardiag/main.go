package main

import (
	"github.com/NVIDIA/vehicle-diagnostics/pkg/cli"
)

func main() {
	cli.Execute()
}
