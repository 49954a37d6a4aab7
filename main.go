package main

import "photofeed/cmd"

func main() {
	cmd.Execute()
}
