package resolve

import (
	"regexp"
)

// importSpecifierPattern matches `import ... from "spec"` and the bare
// `import "spec"` form. It is intentionally permissive — this is a
// specifier-enumeration scan, not a parser, per spec §4.1 ("the walker
// performs a lightweight parse of each file solely to enumerate import
// specifiers; no validation or type resolution runs during walking").
var importSpecifierPattern = regexp.MustCompile(`import\s+(?:[^"'\n]*?\sfrom\s+)?["']([^"']+)["']`)

// ScanSpecifiers is the default SpecifierScanner: it regex-scans source text
// for import specifiers without building a full AST.
func ScanSpecifiers(src []byte) []string {
	matches := importSpecifierPattern.FindAllSubmatch(src, -1)
	specs := make([]string, 0, len(matches))
	for _, m := range matches {
		specs = append(specs, string(m[1]))
	}
	return specs
}
