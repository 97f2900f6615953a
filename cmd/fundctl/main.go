package main

import (
	"os"

	"fund_backend/internal/app/cli"
)

func main() {
	os.Exit(cli.Execute())
}
