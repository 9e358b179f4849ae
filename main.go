package main

import "sales-sync/cmd"

func main() {
	cmd.Execute()
}
