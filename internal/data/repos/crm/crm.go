package crm

import "strings"

// escapeLike neutralizes LIKE wildcards in user-supplied substrings so a
// search for "100%" matches literally. Patterns are used with ESCAPE '\'.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func containsPattern(s string) string {
	return "%" + escapeLike(s) + "%"
}
