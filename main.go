package main

import "laion-dataset/cmd"

func main() {
	cmd.Execute()
}
