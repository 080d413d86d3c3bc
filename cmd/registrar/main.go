package main

import "github.com/yigit/registrar/internal/cli"

func main() {
	cli.Execute()
}
