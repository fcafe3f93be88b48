package main

import "github.com/codiumsa/toolkit/cmd"

func main() {
	cmd.Execute()
}
