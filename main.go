package main

import (
	"github.com/cryocore/thermd/cmd"
)

func main() {
	cmd.Execute()
}
