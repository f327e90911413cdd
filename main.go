package main

import "github.com/ggdaltoso/aleph.js/cmd"

func main() {
	cmd.Execute()
}
