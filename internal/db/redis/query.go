package redis

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/chardex/internal/domain/search/query"
)

// renderQuery translates a query tree into RediSearch DIALECT 2 syntax.
func renderQuery(n query.Node) string {
	switch n.Kind() {
	case query.KindEverything:
		return "*"
	case query.KindTerm:
		return buildTagFilter(n.Field(), n.Value())
	case query.KindText:
		return fmt.Sprintf("@%s:(%s)", n.Field(), strings.Join(escapeWords(n.Value()), " "))
	case query.KindFuzzy:
		words := escapeWords(n.Value())
		for i, w := range words {
			words[i] = "%" + w + "%"
		}
		return fmt.Sprintf("@%s:(%s)", n.Field(), strings.Join(words, " "))
	case query.KindAnd:
		return renderGroup(n.Children(), " ")
	case query.KindOr:
		return renderGroup(n.Children(), " | ")
	default:
		return "*"
	}
}

func renderGroup(children []query.Node, sep string) string {
	if len(children) == 0 {
		return "*"
	}
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = renderQuery(c)
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func escapeWords(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = escapeQuery(f)
	}
	return out
}

func buildTagFilter(key, value string) string {
	escaped := tagEscaper.Replace(value)
	return fmt.Sprintf("@%s:{%s}", key, escaped)
}

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"|", "\\|",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`.`, `\.`,
	`,`, `\,`,
	`:`, `\:`,
)
