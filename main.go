package main

import "github.com/theirongolddev/kpiboard/cmd"

func main() {
	cmd.Execute()
}
