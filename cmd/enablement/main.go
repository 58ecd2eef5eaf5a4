package main

import (
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/cli"
)

func main() {
	cli.Execute()
}
