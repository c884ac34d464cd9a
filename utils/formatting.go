package utils

import (
	"strings"
)

// Do not escape ampersands, because they are not parsed by Telegram
var htmlTelegramEscaper = strings.NewReplacer(
	`'`, "&#39;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&#34;",
)

func Escape(s string) string {
	return htmlTelegramEscaper.Replace(s)
}

func EmbedGUID(guid string) string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("(<code>")
	sb.WriteString(guid)
	sb.WriteString("</code>)")
	return sb.String()
}

func FullName(firstName, lastName string) string {
	var sb strings.Builder
	sb.WriteString(firstName)
	if lastName != "" {
		sb.WriteString(" ")
		sb.WriteString(lastName)
	}
	return sb.String()
}
