package main

import "github.com/youfyi/kitctl/cmd"

func main() {
	cmd.Execute()
}
