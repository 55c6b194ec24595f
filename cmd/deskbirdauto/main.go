package main

import "github.com/example/deskbird-auto/cmd"

func main() {
	cmd.Execute()
}
