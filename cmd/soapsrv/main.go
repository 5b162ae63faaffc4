package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/byjg/go-soap-server/cmd/soapsrv/internal/check"
	"github.com/byjg/go-soap-server/cmd/soapsrv/internal/gen"
	"github.com/byjg/go-soap-server/cmd/soapsrv/internal/serve"
)

type CLI struct {
	Version VersionCmd   `cmd:"" help:"Print version information."`
	Check   check.Cmd    `cmd:"" help:"Validate soapsrv exports in a package."`
	Wsdl    gen.WSDLCmd  `cmd:"" help:"Generate the WSDL contract for an exported server."`
	Disco   gen.DiscoCmd `cmd:"" help:"Generate the DISCO document for an exported server."`
	Serve   serve.Cmd    `cmd:"" help:"Build and serve an exported server over HTTP."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("soapsrv"),
		kong.Description("soapsrv CLI for SOAP service development tools."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
