package app

import (
	"fmt"
	"os"
	"strings"

	"sf-metadata-coverage/internal/types"
)

// checkDefaultsHints returns hints for check flags that repeat what the
// project already declares.
func checkDefaultsHints(req CheckRequest, project types.ProjectConfig) []string {
	checks := []struct {
		flagName string
		source   string
		provided bool
		matches  bool
	}{
		{
			flagName: "--api-version",
			source:   "sourceApiVersion in sfdx-project.json",
			provided: strings.TrimSpace(req.APIVersion) != "",
			matches:  strings.TrimSpace(req.APIVersion) == project.SourceAPIVersion,
		},
	}
	var hints []string
	for _, c := range checks {
		if c.provided && c.matches {
			hints = append(hints, fmt.Sprintf(
				"hint: %s is also set by %s; you can omit the flag",
				c.flagName, c.source,
			))
		}
	}
	return hints
}

// EmitHints writes hint messages to stderr.
func EmitHints(hints []string) {
	for _, h := range hints {
		fmt.Fprintln(os.Stderr, h)
	}
}
