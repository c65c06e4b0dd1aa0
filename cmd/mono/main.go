// Command mono is the conventional-commit release engine for polyglot
// monorepos described by the internal/* packages: it inspects a workspace's
// manifests and git history to compute version increments, render
// changelogs, and cut release commits.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
