// Package gen implements the soapsrv wsdl and disco commands.
package gen

import (
	"fmt"
	"os"

	"github.com/byjg/go-soap-server/internal/directive"
	"github.com/byjg/go-soap-server/internal/runner"
)

// WSDLCmd renders the WSDL contract of an exported server.
type WSDLCmd struct {
	URL     string `help:"Service endpoint URL rendered into the contract." default:"http://localhost:8080/soap"`
	Out     string `help:"Write the document to a file instead of stdout." short:"o"`
	Export  string `help:"Export function name (required if multiple exports exist)." short:"e"`
	Package string `help:"Package to scan (default: current directory)." short:"p" default:"."`
}

func (c *WSDLCmd) Run() error {
	return render(runner.ModeWSDL, c.Package, c.Export, c.URL, c.Out)
}

// DiscoCmd renders the DISCO discovery document of an exported server.
type DiscoCmd struct {
	URL     string `help:"Service endpoint URL rendered into the document." default:"http://localhost:8080/soap"`
	Out     string `help:"Write the document to a file instead of stdout." short:"o"`
	Export  string `help:"Export function name (required if multiple exports exist)." short:"e"`
	Package string `help:"Package to scan (default: current directory)." short:"p" default:"."`
}

func (c *DiscoCmd) Run() error {
	return render(runner.ModeDisco, c.Package, c.Export, c.URL, c.Out)
}

func render(mode runner.Mode, pkg, exportName, url, out string) error {
	result, err := directive.Parse(pkg)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	export, err := directive.SelectExport(result.Exports, exportName)
	if err != nil {
		return err
	}

	output, err := runner.Exec(runner.Options{
		ExportFunc: export.FuncName,
		Mode:       mode,
		BaseURL:    url,
		PkgDir:     result.Dir,
	})
	if err != nil {
		if len(output) > 0 {
			fmt.Fprint(os.Stderr, string(output))
		}
		return err
	}

	if out != "" {
		return os.WriteFile(out, output, 0644)
	}
	fmt.Print(string(output))
	return nil
}
