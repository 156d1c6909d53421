package main

import (
	_ "embed"

	"github.com/notepadie/notepad-local-service/cmd"
)

//go:embed config/config.yaml
var configDefault string

func main() {
	cmd.Execute(configDefault)
}
