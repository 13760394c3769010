package main

import "github.com/maastricht-university/labgrid/cmd"

func main() {
	cmd.Execute()
}
