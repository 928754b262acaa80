package main

import "github.com/gaurav-prasanna/worldometer/cmd"

func main() {
	cmd.Execute()
}
