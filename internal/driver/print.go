package driver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/compiscript/cscc/internal/symbols"
)

// PrintTables renders the scope tree built by the analyzer, one indented
// block per Table, each symbol on its own line with its attributes.
// Symbols are sorted by name within a scope for deterministic output;
// insertion order (preserved for parameter lists) is still the order
// ArgList itself carries.
func PrintTables(table *symbols.SymbolTable) string {
	var sb strings.Builder
	printScope(&sb, table.Global(), 0)
	return sb.String()
}

func printScope(sb *strings.Builder, t *symbols.Table, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%sscope %d\n", indent, t.ID)

	names := make([]string, 0, len(t.Symbols))
	for name := range t.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sym := t.Symbols[name]
		fmt.Fprintf(sb, "%s  %s\n", indent, describeSymbol(sym))
	}

	for _, child := range t.Children {
		printScope(sb, child, depth+1)
	}
}

func describeSymbol(s symbols.Symbol) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("name=%s", s.Name))
	parts = append(parts, fmt.Sprintf("kind=%s", s.Kind))
	parts = append(parts, fmt.Sprintf("type=%s", s.DataType))
	if s.ClassName != "" {
		parts = append(parts, fmt.Sprintf("class=%s", s.ClassName))
	}
	if s.Parent != "" {
		parts = append(parts, fmt.Sprintf("parent=%s", s.Parent))
	}
	parts = append(parts, fmt.Sprintf("label=%s", s.Label))
	if s.Dimensions > 0 {
		parts = append(parts, fmt.Sprintf("dims=%d", s.Dimensions))
	}
	parts = append(parts, fmt.Sprintf("size=%d", s.Size))
	if s.Kind == symbols.Property {
		parts = append(parts, fmt.Sprintf("offset=%d", s.Offset))
	}
	if s.Value != "" {
		parts = append(parts, fmt.Sprintf("value=%s", s.Value))
	}
	if len(s.ArgList) > 0 {
		argNames := make([]string, len(s.ArgList))
		for i, arg := range s.ArgList {
			argNames[i] = arg.Name
		}
		parts = append(parts, fmt.Sprintf("args=(%s)", strings.Join(argNames, ", ")))
	}
	return strings.Join(parts, " ")
}
