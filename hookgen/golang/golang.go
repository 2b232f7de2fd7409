// Package golang renders an assembled hook unit as Go source.
package golang

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/hookgen/assemble"
	"github.com/teranos/qntx-hooks/hookgen/decl"
	"github.com/teranos/qntx-hooks/hookgen/synth"
)

// GeneratedPrefix starts the first line of every file hookgen writes.
const GeneratedPrefix = "// Code generated by hookgen"

// Render returns the gofmt'ed source of u.
func Render(u *assemble.Unit) ([]byte, error) {
	if u == nil {
		return nil, errors.New("nothing to render")
	}

	var sb strings.Builder
	writeHeader(&sb, u)
	writeImpl(&sb, u)
	for _, c := range u.Classes {
		writeClass(&sb, c)
	}

	src, err := imports.Process("", []byte(sb.String()), &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to format generated code for %s", u.Container)
	}
	return src, nil
}

func writeHeader(sb *strings.Builder, u *assemble.Unit) {
	if u.Source.File != "" {
		fmt.Fprintf(sb, "%s from %s. DO NOT EDIT.\n\n", GeneratedPrefix, filepath.Base(u.Source.File))
	} else {
		fmt.Fprintf(sb, "%s. DO NOT EDIT.\n\n", GeneratedPrefix)
	}
	fmt.Fprintf(sb, "package %s\n\n", u.Package)

	std, other := splitImports(u.Imports)
	sb.WriteString("import (\n")
	for _, imp := range std {
		writeImport(sb, imp)
	}
	if len(std) > 0 && len(other) > 0 {
		sb.WriteString("\n")
	}
	for _, imp := range other {
		writeImport(sb, imp)
	}
	sb.WriteString(")\n\n")
}

// splitImports separates standard library packages (no dot in the first
// path element) from the rest, each group keeping path order.
func splitImports(all []decl.Import) (std, other []decl.Import) {
	for _, imp := range all {
		first, _, _ := strings.Cut(imp.Path, "/")
		if strings.Contains(first, ".") {
			other = append(other, imp)
		} else {
			std = append(std, imp)
		}
	}
	return std, other
}

func writeImport(sb *strings.Builder, imp decl.Import) {
	if imp.Explicit {
		fmt.Fprintf(sb, "\t%s %q\n", imp.Name, imp.Path)
		return
	}
	fmt.Fprintf(sb, "\t%q\n", imp.Path)
}

func writeImpl(sb *strings.Builder, u *assemble.Unit) {
	fmt.Fprintf(sb, "// %s implements the hooks declared by the %s %s.\n", u.Name, u.Kind, u.Container)
	fmt.Fprintf(sb, "type %s%s struct {\n", u.Name, typeParamList(u.TypeParams))
	for _, p := range u.Properties {
		fmt.Fprintf(sb, "\t%s %s\n", p.Name, p.Type)
	}
	sb.WriteString("}\n\n")

	fmt.Fprintf(sb, "// %s returns a %s with every hook ready to tap.\n", u.Constructor, u.Name)
	fmt.Fprintf(sb, "func %s%s() *%s {\n", u.Constructor, typeParamList(u.TypeParams), u.Instance())
	fmt.Fprintf(sb, "\treturn &%s{\n", u.Instance())
	for _, p := range u.Properties {
		fmt.Fprintf(sb, "\t\t%s: &%s{},\n", p.Name, u.Classes[p.Class].Instance())
	}
	sb.WriteString("\t}\n}\n\n")
}

func writeClass(sb *strings.Builder, c synth.Class) {
	writeDoc(sb, "", c.Doc)
	fmt.Fprintf(sb, "type %s%s struct {\n", c.Name, typeParamList(c.TypeParams))
	fmt.Fprintf(sb, "\t%s\n", c.Super)
	sb.WriteString("}\n\n")

	for _, m := range c.Methods() {
		writeDoc(sb, "", m.Doc)
		fmt.Fprintf(sb, "func (h *%s) %s%s {\n", c.Instance(), m.Name, synth.FuncType(m.Params, m.Results)[len("func"):])
		writeBody(sb, m.Body)
		sb.WriteString("}\n\n")
	}
}

func writeDoc(sb *strings.Builder, indent, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		if line == "" {
			fmt.Fprintf(sb, "%s//\n", indent)
			continue
		}
		fmt.Fprintf(sb, "%s// %s\n", indent, line)
	}
}

// writeBody renders a single-call body. Adapter arguments are written as
// multi-line function literals.
func writeBody(sb *strings.Builder, b synth.Body) {
	sb.WriteString("\t")
	if b.Return {
		sb.WriteString("return ")
	}
	sb.WriteString(b.Target)
	sb.WriteString("(")
	for i, arg := range b.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		if arg.Adapter == nil {
			sb.WriteString(arg.Expr)
			continue
		}
		writeAdapter(sb, *arg.Adapter)
	}
	sb.WriteString(")\n")
}

func writeAdapter(sb *strings.Builder, a synth.Adapter) {
	sb.WriteString(synth.FuncType(a.Params, a.Results))
	sb.WriteString(" {\n\t\t")
	if len(a.Results) > 0 {
		sb.WriteString("return ")
	}
	fmt.Fprintf(sb, "%s(%s)\n\t}", a.Callee, strings.Join(a.Args, ", "))
}

func typeParamList(tps []decl.TypeParam) string {
	if len(tps) == 0 {
		return ""
	}
	parts := make([]string, len(tps))
	for i, tp := range tps {
		parts[i] = tp.Name + " " + tp.Constraint
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
