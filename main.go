package main

import "github.com/josephlewis42/bananashell/cmd"

func main() {
	cmd.Execute()
}
