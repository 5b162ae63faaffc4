// Package serve implements the soapsrv serve command.
package serve

import (
	"fmt"
	"os"

	"github.com/byjg/go-soap-server/internal/directive"
	"github.com/byjg/go-soap-server/internal/runner"
)

// Cmd builds and runs an exported server over HTTP.
type Cmd struct {
	Addr    string `help:"Listen address." default:":8080"`
	Export  string `help:"Export function name (required if multiple exports exist)." short:"e"`
	Package string `help:"Package to scan (default: current directory)." short:"p" default:"."`
}

func (c *Cmd) Run() error {
	result, err := directive.Parse(c.Package)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	export, err := directive.SelectExport(result.Exports, c.Export)
	if err != nil {
		return err
	}

	output, err := runner.Exec(runner.Options{
		ExportFunc: export.FuncName,
		Mode:       runner.ModeServe,
		Addr:       c.Addr,
		PkgDir:     result.Dir,
	})
	if err != nil {
		if len(output) > 0 {
			fmt.Fprint(os.Stderr, string(output))
		}
		return err
	}
	return nil
}
