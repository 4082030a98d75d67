package main

import (
	"fmt"
	"os"

	relaycmder "github.com/relaychat/relay/cmd/relay"
)

func main() {
	cmd := relaycmder.NewRelayCmd()

	err := cmd.Execute()
	if err != nil {
		fmt.Printf("Error executing root command: %v\n", err)
		os.Exit(1)
	}
}
