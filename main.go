package main

import (
	_ "time/tzdata"

	"github.com/Alijeyrad/moksha_web/cmd"
)

func main() {
	cmd.Execute()
}
