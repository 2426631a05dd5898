package main

import "github.com/runsascoded/shapes/cmd/vennfit/cmd"

func main() {
	cmd.Execute()
}
