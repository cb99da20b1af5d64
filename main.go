package main

import "github.com/fabianopolone123/ERP-TI/cmd"

func main() {
	cmd.Execute()
}
