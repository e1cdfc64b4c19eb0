package token

// This file implements the operations internal/jobctl consumes from a parsed
// line. jobctl never inspects token text beyond these.

// specialTokens are every token that terminates an argv, in original source
// order.
var specialTokens = []string{"<", ">", "2>", "&"}

// SplitAtPipe returns the tail following the first "|" token, and the head
// truncated at that position (the pipe token itself is dropped from both).
// A token list with no "|" returns (t, nil) — "no pipe" yields an empty
// tail.
func (t Tokens) SplitAtPipe() (head, tail Tokens) {
	for i, tok := range t {
		if tok == "|" {
			return t[:i], t[i+1:]
		}
	}
	return t, nil
}

// FindRedirect returns the path token immediately following the first
// occurrence of op (one of "<", ">", "2>"), or ok=false if op does not
// appear or has no following token.
func (t Tokens) FindRedirect(op string) (path string, ok bool) {
	for i, tok := range t {
		if tok == op && i+1 < len(t) {
			return t[i+1], true
		}
	}
	return "", false
}

// HasBackground reports whether the token list ends with a trailing "&".
func (t Tokens) HasBackground() bool {
	return len(t) > 0 && t[len(t)-1] == "&"
}

// TruncateArgv returns the argv for execvp: t truncated at the first
// occurrence of any of "<", ">", "2>", "&". If none of those appear, the
// entire token list is the argv.
func (t Tokens) TruncateArgv() []string {
	for i, tok := range t {
		for _, special := range specialTokens {
			if tok == special {
				return append([]string(nil), t[:i]...)
			}
		}
	}
	return append([]string(nil), t...)
}
