package main

import (
	"map-catalog/cli"
)

func main() {
	cli.Start()
}
