package main

import "github.com/finito-app/expense-tracker/cmd"

func main() {
	cmd.Execute()
}
