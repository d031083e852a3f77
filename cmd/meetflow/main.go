package main

import (
	"fmt"
	"os"

	"meetflow/cmd/meetflow/cmd"
	"meetflow/internal/config"
)

func main() {
	// A missing .env is fine, variables may come from the environment.
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cmd.Execute()
}
