package main

import "sf-metadata-coverage/internal/cli"

func main() {
	cli.Execute()
}
