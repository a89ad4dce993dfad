package main

import "github.com/sabrinahaniff/pdf-sentry/cmd"

func main() {
	cmd.Execute()
}
