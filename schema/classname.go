package schema

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// DeriveClassName computes the mapped class name for a table that declared
// no explicit "AS ClassName" clause: snake_case segments are singularized on
// the last segment, title-cased, and concatenated, so "user_accounts"
// becomes "UserAccount" and "posts" becomes "Post".
func DeriveClassName(tableName string) string {
	var parts []string
	for _, p := range strings.Split(tableName, "_") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if n := len(parts); n > 0 {
		parts[n-1] = singularize(parts[n-1])
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(titleCaser.String(p))
	}
	return b.String()
}

// singularize strips the common English plural suffixes an ORM table name
// uses: "ies" -> "y", "ses"/"xes"/"ches"/"shes" -> drop the "es", a bare
// trailing "s" (but not "ss") -> drop the "s". Anything else (already
// singular, or an irregular plural) is returned unchanged.
func singularize(word string) string {
	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(lower, "ses"), strings.HasSuffix(lower, "xes"),
		strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
		return word[:len(word)-1]
	default:
		return word
	}
}
