package main

import (
	"fmt"
	"os"
)

// 构建时注入
var (
	version = "dev"
	commit  = "none"
)

func main() {
	root := newRootCmd()
	root.Version = fmt.Sprintf("%s (commit: %s)", version, commit)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
