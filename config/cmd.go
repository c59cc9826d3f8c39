package config

import (
	"fmt"
	"os"
)

// CLICmd prints the reference configuration, ready to be edited and passed
// back with --config.
type CLICmd struct{}

func (c *CLICmd) Run() error {
	if err := Save(os.Stdout, Default()); err != nil {
		return fmt.Errorf("could not print default configuration: %w", err)
	}
	return nil
}
