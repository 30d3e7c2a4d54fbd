package main

import (
	"fmt"
	"os"

	"buglog/pkg/bugclient"
)

func main() {
	if err := bugclient.RunCLI(os.Args[0], os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if usage, ok := err.(bugclient.UsageError); ok {
			fmt.Fprintln(os.Stderr, usage.Error())
			for _, line := range usage.UsageLines() {
				fmt.Fprintln(os.Stderr, line)
			}
			os.Exit(2)
		}
		os.Exit(1)
	}
}
