package main

import "github.com/orsimlab/orsim/orsim/cmd"

func main() {
	cmd.Execute()
}
