package main

import "gymling/cmd/gymling/root"

func main() {
	root.Execute()
}
