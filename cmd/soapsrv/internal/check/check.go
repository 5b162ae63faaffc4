// Package check implements the soapsrv check command.
package check

import (
	"fmt"

	"github.com/byjg/go-soap-server/internal/directive"
)

type Cmd struct {
	Export  string `help:"Export function name (required if multiple exports exist)." short:"e"`
	Package string `help:"Package to scan (default: current directory)." short:"p" default:"."`
}

func (c *Cmd) Run() error {
	result, err := directive.Parse(c.Package)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	if _, err := directive.SelectExport(result.Exports, c.Export); err != nil {
		return err
	}

	for _, e := range result.Exports {
		fmt.Printf("✓ Found export: %s()", e.FuncName)
		if e.Name != "" {
			fmt.Printf(" [%s]", e.Name)
		}
		fmt.Println()
	}
	fmt.Printf("✓ Package %s OK\n", result.PackagePath)
	return nil
}
