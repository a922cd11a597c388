package main

import "github.com/sungur/wslpath/internal/cli"

func main() {
	cli.Execute()
}
