package yandex

import "strings"

// ExtractJSON pulls the JSON fragment out of a free-text model reply.
// Models love to wrap their JSON in markdown fences or surround it with
// prose; this strips known fence markers, then cuts the text down to the
// first plausible JSON boundary. The result is a best-effort candidate —
// callers still attempt the parse and fall back on failure.
func ExtractJSON(s string) string {
	s = stripCodeFence(s)

	start := strings.IndexAny(s, "[{")
	if start == -1 {
		return s
	}

	closing := byte('}')
	if s[start] == '[' {
		closing = ']'
	}
	end := strings.LastIndexByte(s, closing)
	if end <= start {
		// Truncated output: no closing bracket. Hand back the tail and
		// let the parse fail into the operation's default.
		return s[start:]
	}
	return s[start : end+1]
}

// stripCodeFence removes ```json ... ``` wrappers.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
