// Package directive parses soapsrv directives from Go source files.
//
// Directives are line comments in the form:
//
//	//soapsrv:export [name]
//
// The export directive marks a package-level function that builds the
// *soapserver.Server for a service. The optional name allows selecting
// between multiple exports.
package directive

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"
)

const prefix = "//soapsrv:"

// Directive represents a parsed soapsrv directive.
type Directive struct {
	Name     string         // optional export name (empty if unnamed)
	FuncName string         // name of the function
	Pos      token.Position // source location
}

// Result contains all directives found in a package.
type Result struct {
	// Exports contains all //soapsrv:export directives found.
	Exports []Directive

	// PackagePath is the import path of the parsed package.
	PackagePath string

	// Dir is the directory containing the package.
	Dir string
}

// Parse scans a Go package for soapsrv directives.
//
// The pattern follows go command semantics: "." for the current
// directory, an import path, or a directory path.
//
// Returns an error if the package cannot be loaded or a directive is not
// immediately followed by a function declaration.
func Parse(pattern string) (*Result, error) {
	return ParseDir(pattern, "")
}

// ParseDir is like Parse but allows specifying a working directory.
// If dir is empty, the current directory is used.
func ParseDir(pattern, dir string) (*Result, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found matching %q", pattern)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found matching %q; specify a single package", pattern)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("package errors: %v", pkg.Errors[0])
	}

	result := &Result{
		PackagePath: pkg.PkgPath,
	}
	if len(pkg.GoFiles) > 0 {
		result.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	fset := token.NewFileSet()
	for _, filename := range pkg.GoFiles {
		f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}

		directives, err := parseFile(fset, f)
		if err != nil {
			return nil, err
		}
		result.Exports = append(result.Exports, directives...)
	}

	return result, nil
}

// parseFile extracts directives from a single file.
func parseFile(fset *token.FileSet, f *ast.File) ([]Directive, error) {
	var directives []Directive

	// Build a map of comment end positions to directives so we can match
	// them to the following function declarations.
	type pending struct {
		name string
		pos  token.Position
	}
	commentToDirective := make(map[token.Pos]pending)

	for _, cg := range f.Comments {
		for _, c := range cg.List {
			if !strings.HasPrefix(c.Text, prefix) {
				continue
			}

			text := strings.TrimPrefix(c.Text, prefix)
			parts := strings.Fields(text)
			if len(parts) == 0 {
				continue
			}

			pos := fset.Position(c.Pos())
			switch parts[0] {
			case "export":
				name := ""
				if len(parts) > 1 {
					name = parts[1]
				}
				commentToDirective[cg.End()] = pending{
					name: name,
					pos:  pos,
				}
			default:
				return nil, fmt.Errorf("%s: unknown directive %s%s", pos, prefix, parts[0])
			}
		}
	}

	// Match directives to function declarations
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		if fn.Doc != nil {
			if p, ok := commentToDirective[fn.Doc.End()]; ok {
				if fn.Recv != nil {
					return nil, fmt.Errorf("%s: %sexport must be on a package-level function, not a method",
						p.pos, prefix)
				}
				directives = append(directives, Directive{
					Name:     p.name,
					FuncName: fn.Name.Name,
					Pos:      p.pos,
				})
				delete(commentToDirective, fn.Doc.End())
			}
		}
	}

	// Check for unmatched directives
	for _, p := range commentToDirective {
		return nil, fmt.Errorf("%s: %sexport directive must be followed by a function declaration", p.pos, prefix)
	}

	return directives, nil
}

// SelectExport picks the export to use.
//
// If name is empty the package must contain exactly one export; otherwise
// the export with that name is returned.
func SelectExport(exports []Directive, name string) (*Directive, error) {
	if name != "" {
		for i := range exports {
			if exports[i].Name == name {
				return &exports[i], nil
			}
		}
		return nil, fmt.Errorf("export %q not found", name)
	}

	switch len(exports) {
	case 0:
		return nil, fmt.Errorf("no export found\n\nAdd a function that returns *soapserver.Server:\n\n    //soapsrv:export\n    func SetupServer() *soapserver.Server {\n        s := soapserver.NewServer(\"MyService\", \"urn:myservice\")\n        // ...\n        return s\n    }")
	case 1:
		return &exports[0], nil
	default:
		msg := "multiple exports found:\n"
		for _, e := range exports {
			msg += fmt.Sprintf("  - %s() [%s]\n", e.FuncName, e.Name)
		}
		msg += "\nSpecify which one with --export <name>"
		return nil, fmt.Errorf("%s", msg)
	}
}
