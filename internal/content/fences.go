package content

import "strings"

const fence = "```"

// StripFences removes a code fence wrapping the whole response, with or
// without a language tag. Text without a leading fence is only trimmed.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, fence) {
		return text
	}
	body := text[len(fence):]
	// Drop the info string ("markdown", "md", ...) on the opening line.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		if tag := strings.TrimSpace(body[:nl]); !strings.ContainsAny(tag, " \t") {
			body = body[nl+1:]
		}
	} else {
		body = strings.TrimLeft(body, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, fence)
	return strings.TrimSpace(body)
}
