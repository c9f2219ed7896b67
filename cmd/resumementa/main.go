package main

import "github.com/shouni/gemini-ementa-kit/internal/cli"

func main() {
	cli.Execute()
}
