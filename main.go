package main

import (
	"tunebox/cmd"
)

func main() {
	cmd.Execute()
}
