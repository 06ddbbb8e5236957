package main

import "github.com/badgerhobbs/heatclip/internal/cli"

func main() {
	cli.Main()
}
