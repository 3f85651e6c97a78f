package main

import "github.com/clarkzinzow/tinysh/cmd"

func main() {
	cmd.Execute()
}
