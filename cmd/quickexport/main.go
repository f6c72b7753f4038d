package main

import "quickexport/cmd/quickexport/cmd"

func main() {
	cmd.Execute()
}
