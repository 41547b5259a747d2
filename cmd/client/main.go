package main

import "github.com/nexsys-labs/billing/internal/client/cli"

func main() {
	cli.Execute()
}
