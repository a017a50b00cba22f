package main

import "newmeclass_backend/cmd"

func main() {
	cmd.Execute()
}
