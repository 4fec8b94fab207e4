package main

import "github.com/notargets/gomag/cmd"

func main() {
	cmd.Execute()
}
