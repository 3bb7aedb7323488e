package main

import "storelisting/cmd"

func main() {
	cmd.Execute()
}
