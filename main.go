package main

import "daysync/cmd"

func main() {
	cmd.Execute()
}
