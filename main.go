package main

import "github.com/basnijholt/pixi-to-conda-lock/cmd"

var version = "dev"

func main() {
	cmd.Execute(version)
}
