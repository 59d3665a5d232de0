package main

import (
	"os"

	"github.com/doichev-kostia/performance-aware-programming/sim8086/pkg/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
