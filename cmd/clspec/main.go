package main

import (
	"github.com/NVIDIA/clspec/pkg/cli"
)

func main() {
	cli.Execute()
}
