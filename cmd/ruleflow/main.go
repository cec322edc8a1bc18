package main

import "github.com/mehrshadshams/reactive/cmd/ruleflow/commands"

func main() {
	commands.Execute()
}
