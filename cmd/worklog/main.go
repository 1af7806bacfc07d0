package main

import "github.com/sporadisk/worklog/cli"

func main() {
	cli.Execute()
}
