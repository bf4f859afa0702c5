package main

import "github.com/mactv-dev/mactv/cmd"

func main() {
	cmd.Execute()
}
