package main

import "github.com/Sena-ops/cguard/cmd"

func main() {
	cmd.Execute()
}
