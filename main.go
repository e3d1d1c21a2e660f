package main

import "budgetdeck/cmd"

func main() {
	cmd.Execute()
}
