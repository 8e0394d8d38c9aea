package main

import "github.com/theirongolddev/fyfire/cmd"

func main() {
	cmd.Execute()
}
