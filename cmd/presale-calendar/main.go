package main

import "github.com/millerntor/presale-calendar/internal/cli"

func main() {
	cli.Execute()
}
