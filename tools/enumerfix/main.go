// Command enumerfix rewrites enumer output so generated enums report errors
// through cockroachdb/errors instead of fmt.Errorf.
package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/go/ast/astutil"
)

const errorsPkg = "github.com/cockroachdb/errors"

// ErrUsage indicates incorrect usage of the tool.
var ErrUsage = errors.New("usage: enumerfix <file>...")

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(files []string) error {
	if len(files) == 0 {
		return ErrUsage
	}

	for _, name := range files {
		if err := fixFile(name); err != nil {
			return err
		}
	}

	return nil
}

func fixFile(name string) error {
	info, err := os.Stat(name)
	if err != nil {
		return errors.Wrapf(err, "stat %s", name)
	}

	//nolint:gosec // path comes from go:generate
	src, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "reading %s", name)
	}

	out, err := rewrite(name, src)
	if err != nil {
		return err
	}

	if bytes.Equal(src, out) {
		return nil
	}

	return errors.Wrapf(os.WriteFile(name, out, info.Mode().Perm()), "writing %s", name)
}

// rewrite replaces fmt.Errorf calls with errors.Newf and fixes the imports.
// The fmt import is dropped when nothing else uses it.
func rewrite(name string, src []byte) ([]byte, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, name, src, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", name)
	}

	replaced := 0
	fmtUses := 0

	ast.Inspect(file, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		pkg, ok := sel.X.(*ast.Ident)
		if !ok || pkg.Name != "fmt" {
			return true
		}

		if sel.Sel.Name == "Errorf" {
			pkg.Name = "errors"
			sel.Sel.Name = "Newf"
			replaced++

			return true
		}

		fmtUses++

		return true
	})

	if replaced == 0 {
		return src, nil
	}

	astutil.AddImport(fset, file, errorsPkg)

	if fmtUses == 0 {
		astutil.DeleteImport(fset, file, "fmt")
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return nil, errors.Wrapf(err, "formatting %s", name)
	}

	return buf.Bytes(), nil
}
