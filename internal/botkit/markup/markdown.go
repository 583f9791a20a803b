// Package markup builds Telegram MarkdownV2 text.
package markup

import "strings"

// Every character MarkdownV2 reserves outside of code and link targets.
const specialChars = "_*[]()~`>#+-=|{}.!\\"

var (
	replacer    = newReplacer(specialChars)
	urlReplacer = newReplacer(`)\`)
)

func newReplacer(chars string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(chars))
	for _, c := range chars {
		pairs = append(pairs, string(c), "\\"+string(c))
	}
	return strings.NewReplacer(pairs...)
}

func EscapeForMarkdown(src string) string {
	return replacer.Replace(src)
}

func Bold(s string) string {
	return "*" + EscapeForMarkdown(s) + "*"
}

func Italic(s string) string {
	return "_" + EscapeForMarkdown(s) + "_"
}

func Code(s string) string {
	return "`" + strings.NewReplacer("`", "\\`", `\`, `\\`).Replace(s) + "`"
}

// Link renders an inline link. Only ')' and '\' need escaping inside the URL.
func Link(text, url string) string {
	return "[" + EscapeForMarkdown(text) + "](" + urlReplacer.Replace(url) + ")"
}
