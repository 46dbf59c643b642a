package main

import "github.com/caxiam/model-api/cmd"

func main() {
	cmd.Execute()
}
