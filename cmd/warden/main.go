package main

import "github.com/wardenbot/warden/cmd/warden/cmd"

func main() {
	cmd.Execute()
}
