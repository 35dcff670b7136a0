package main

import "github.com/notargets/goffd/cmd"

func main() {
	cmd.Execute()
}
