package main

import (
	"fmt"
	"runtime"
)

// VersionCommand prints version info
type VersionCommand struct {
	env *environment
}

// Execute implements flags.Commander
func (c *VersionCommand) Execute(_ []string) error {
	_, err := fmt.Fprintf(c.env.stdout, "%s %s (%s)\n", appName, revision, runtime.Version())
	return err
}
