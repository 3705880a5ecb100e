package main

import "worldclockset/cmd"

func main() {
	cmd.Execute()
}
