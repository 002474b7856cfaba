package main

import (
	"context"
	"os"

	"web_task_agent/presentation/terminal"
)

func main() {
	if err := terminal.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
