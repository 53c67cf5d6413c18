package main

import (
	"fmt"
	"os"
)

// Set at build time.
var (
	version = "dev"
	commit  = ""
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
