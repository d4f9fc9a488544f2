package main

import "AwarenessSimulator_SecurityProject/internal/cli"

func main() {
	cli.Execute()
}
