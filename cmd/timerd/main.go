package main

import "github.com/oshokin/timer-endpoints/cmd/timerd/cmd"

func main() {
	cmd.Execute()
}
