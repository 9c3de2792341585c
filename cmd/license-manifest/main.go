package main

import "license-manifest/internal/cli"

func main() {
	cli.Execute()
}
