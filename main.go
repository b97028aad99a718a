package main

import (
	"github.com/cpescan/cpescan/cmd"
)

func main() {
	cmd.Execute()
}
