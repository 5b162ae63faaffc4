// Package runner executes contract generation and ad-hoc serving by
// building and running a modified version of the user's package.
//
// It uses Go's -overlay flag to replace the user's main() with a runner
// that calls the export function and renders the contract or serves the
// handler.
package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
)

// Mode selects what the generated runner does with the exported server.
type Mode string

const (
	// ModeWSDL writes the WSDL contract to stdout.
	ModeWSDL Mode = "wsdl"
	// ModeDisco writes the DISCO discovery document to stdout.
	ModeDisco Mode = "disco"
	// ModeServe validates the server and serves it over HTTP.
	ModeServe Mode = "serve"
)

// Options configures the runner.
type Options struct {
	// ExportFunc is the name of the function to call. It must return
	// *soapserver.Server.
	ExportFunc string

	// Mode selects contract rendering or serving.
	Mode Mode

	// BaseURL is the externally visible service URL rendered into the
	// contract (wsdl/disco modes).
	BaseURL string

	// Addr is the listen address (serve mode).
	Addr string

	// PkgDir is the directory containing the package.
	PkgDir string
}

// Exec builds and runs the runner binary.
//
// It creates an overlay that:
//  1. Replaces files containing func main() with versions that have
//     main() removed
//  2. Adds a runner file with our own main()
//
// The overlay approach lets us work with package main and unexported
// functions. In wsdl/disco modes the rendered document is returned; in
// serve mode the process streams to the caller's stdout/stderr until
// interrupted.
func Exec(opts Options) (output []byte, err error) {
	tmpDir, err := os.MkdirTemp("", "soapsrv-run-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	overlay := make(map[string]string)

	files, err := filepath.Glob(filepath.Join(opts.PkgDir, "*.go"))
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}

	for _, file := range files {
		if strings.HasSuffix(file, "_test.go") {
			continue
		}

		hasMain, modified, err := removeMain(file)
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", file, err)
		}

		if hasMain {
			tmpFile := filepath.Join(tmpDir, filepath.Base(file))
			if err := os.WriteFile(tmpFile, modified, 0644); err != nil {
				return nil, fmt.Errorf("write modified %s: %w", file, err)
			}
			overlay[file] = tmpFile
		}
	}

	runnerSrc, err := generateRunner(opts)
	if err != nil {
		return nil, fmt.Errorf("generate runner: %w", err)
	}

	runnerFile := filepath.Join(tmpDir, "soapsrv_runner_main_.go")
	if err := os.WriteFile(runnerFile, runnerSrc, 0644); err != nil {
		return nil, fmt.Errorf("write runner: %w", err)
	}
	overlay[filepath.Join(opts.PkgDir, "soapsrv_runner_main_.go")] = runnerFile

	overlayData := struct {
		Replace map[string]string `json:"Replace"`
	}{Replace: overlay}

	overlayJSON, err := json.Marshal(overlayData)
	if err != nil {
		return nil, fmt.Errorf("marshal overlay: %w", err)
	}

	overlayFile := filepath.Join(tmpDir, "overlay.json")
	if err := os.WriteFile(overlayFile, overlayJSON, 0644); err != nil {
		return nil, fmt.Errorf("write overlay: %w", err)
	}

	// Use -mod=mod to allow updating go.mod/go.sum if needed
	binaryPath := filepath.Join(tmpDir, "runner")
	buildCmd := exec.Command("go", "build", "-mod=mod", "-overlay", overlayFile, "-o", binaryPath, ".")
	buildCmd.Dir = opts.PkgDir
	buildCmd.Env = append(os.Environ(), "GOWORK=off")
	if buildOut, err := buildCmd.CombinedOutput(); err != nil {
		return buildOut, fmt.Errorf("build: %w\n%s", err, buildOut)
	}

	runCmd := exec.Command(binaryPath)
	runCmd.Dir = opts.PkgDir

	if opts.Mode == ModeServe {
		// Serving blocks until interrupted; hand the process our own
		// streams instead of buffering.
		runCmd.Stdout = os.Stdout
		runCmd.Stderr = os.Stderr
		if err := runCmd.Run(); err != nil {
			return nil, fmt.Errorf("run: %w", err)
		}
		return nil, nil
	}

	output, err = runCmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("run: %w\n%s", err, output)
	}
	return output, nil
}

// removeMain parses a Go file and returns a version with func main()
// removed. Returns (hasMain, modifiedSource, error).
func removeMain(filename string) (bool, []byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
	if err != nil {
		return false, nil, err
	}

	hasMain := false
	var newDecls []ast.Decl
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if ok && fn.Name.Name == "main" && fn.Recv == nil {
			hasMain = true
			continue
		}
		newDecls = append(newDecls, decl)
	}

	if !hasMain {
		return false, nil, nil
	}

	f.Decls = newDecls

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, f); err != nil {
		return false, nil, err
	}
	return true, buf.Bytes(), nil
}

// generateRunner creates the runner main() source for the selected mode.
func generateRunner(opts Options) ([]byte, error) {
	var tmplStr string
	switch opts.Mode {
	case ModeWSDL, ModeDisco:
		tmplStr = contractRunnerTemplate
	case ModeServe:
		tmplStr = serveRunnerTemplate
	default:
		return nil, fmt.Errorf("unknown runner mode: %q", opts.Mode)
	}

	tmpl, err := template.New("runner").Parse(tmplStr)
	if err != nil {
		return nil, err
	}

	data := struct {
		ExportFunc string
		BaseURL    string
		Addr       string
		Disco      bool
	}{
		ExportFunc: opts.ExportFunc,
		BaseURL:    opts.BaseURL,
		Addr:       opts.Addr,
		Disco:      opts.Mode == ModeDisco,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const contractRunnerTemplate = `package main

import (
	"fmt"
	"os"
)

func main() {
	s := {{.ExportFunc}}()
	if err := s.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "soapsrv: %v\n", err)
		os.Exit(1)
	}
{{if .Disco}}
	body, err := s.Discovery("{{.BaseURL}}")
{{else}}
	body, err := s.Contract("{{.BaseURL}}")
{{end}}
	if err != nil {
		fmt.Fprintf(os.Stderr, "soapsrv: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(body)
	fmt.Println()
}
`

const serveRunnerTemplate = `package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

func main() {
	s := {{.ExportFunc}}()
	if err := s.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "soapsrv: %v\n", err)
		os.Exit(1)
	}
	log.Printf("soapsrv: serving on {{.Addr}}")
	log.Fatal(http.ListenAndServe("{{.Addr}}", s.Handler()))
}
`
