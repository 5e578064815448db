package main

import (
	"github.com/Hazy142/AI-GitHub-Repo-Analyzer/cmd"
)

func main() {
	cmd.Execute()
}
