package main

import (
	"github.com/burhanyldz/zindekal/cmd"
	"github.com/burhanyldz/zindekal/config"
	"github.com/burhanyldz/zindekal/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
