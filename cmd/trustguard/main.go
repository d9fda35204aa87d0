package main

import "trustguard/internal/cli"

func main() {
	cli.Execute()
}
