package parser

import (
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// numberValue converts the text of a numeric literal. Bigint literals return
// a nil value and their decimal digits.
func numberValue(raw string) (value any, bigint string) {
	s := strings.ReplaceAll(raw, "_", "")
	if digits, ok := strings.CutSuffix(s, "n"); ok {
		if b, ok := new(big.Int).SetString(digits, 0); ok {
			return nil, b.String()
		}
		return nil, digits
	}
	if len(s) > 1 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			if b, ok := new(big.Int).SetString(s, 0); ok {
				f, _ := new(big.Float).SetInt(b).Float64()
				return f, ""
			}
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, ""
	}
	return f, ""
}

// unescape decodes one JavaScript escape sequence, backslash included.
// Unknown escapes decode to the escaped character itself.
func unescape(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}
	body := seq[1:]
	switch body[0] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		if len(body) == 1 {
			return "\x00"
		}
	case '\n', '\r', 0xe2:
		// Line continuation (including U+2028 and U+2029).
		if r, _ := utf8.DecodeRuneInString(body); r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029' {
			return ""
		}
	case 'x':
		if n, err := strconv.ParseUint(body[1:], 16, 32); err == nil {
			return string(rune(n))
		}
	case 'u':
		hex := strings.TrimSuffix(strings.TrimPrefix(body[1:], "{"), "}")
		if n, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return string(rune(n))
		}
	}
	_, size := utf8.DecodeRuneInString(body)
	return body[:size]
}

// cook decodes the escape sequences of raw template text.
func cook(raw string) string {
	if !strings.Contains(raw, "\\") {
		return raw
	}
	var sb strings.Builder
	for i := 0; i < len(raw); {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			i++
			continue
		}
		n := escapeLen(raw[i:])
		sb.WriteString(unescape(raw[i : i+n]))
		i += n
	}
	return sb.String()
}

// escapeLen returns the byte length of the escape sequence at the start of
// s, which begins with a backslash.
func escapeLen(s string) int {
	switch s[1] {
	case 'x':
		return min(len(s), 4)
	case 'u':
		if len(s) > 2 && s[2] == '{' {
			if end := strings.IndexByte(s, '}'); end > 0 {
				return end + 1
			}
			return len(s)
		}
		return min(len(s), 6)
	case '\r':
		if len(s) > 2 && s[2] == '\n' {
			return 3
		}
	}
	_, size := utf8.DecodeRuneInString(s[1:])
	return 1 + size
}
