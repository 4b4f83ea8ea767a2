package formula

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenIdent
	tokenFunc
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenPercent
	tokenPower
	tokenLParen
	tokenRParen
	tokenComma
	tokenLT
	tokenLE
	tokenGT
	tokenGE
	tokenEQ
	tokenNE
	tokenQuestion
	tokenColon
	tokenEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// allowedFunctions is the complete call allow-list. Anything else that
// looks like a function is rejected at parse time.
var allowedFunctions = map[string]struct{}{
	"min":   {},
	"max":   {},
	"abs":   {},
	"round": {},
}

// lex tokenizes a formula. Component identifiers must be uppercase
// (BASIC, HRA_RECEIVED); lowercase names are only accepted as allow-listed
// function names. Every other character is a lex error, which keeps the
// input surface closed: there are no strings, no attribute access, no
// statement separators.
func lex(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			seenDot := false
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				if runes[i] == '.' {
					if seenDot {
						return nil, fmt.Errorf("malformed number at position %d", start)
					}
					seenDot = true
				}
				i++
			}
			text := string(runes[start:i])
			if text == "." {
				return nil, fmt.Errorf("malformed number at position %d", start)
			}
			tokens = append(tokens, token{kind: tokenNumber, text: text, pos: start})
		case unicode.IsUpper(r):
			start := i
			for i < len(runes) && (unicode.IsUpper(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: string(runes[start:i]), pos: start})
		case unicode.IsLower(r):
			start := i
			for i < len(runes) && unicode.IsLower(runes[i]) {
				i++
			}
			name := string(runes[start:i])
			if _, ok := allowedFunctions[name]; !ok {
				return nil, fmt.Errorf("unknown name %q at position %d (component codes are uppercase)", name, start)
			}
			tokens = append(tokens, token{kind: tokenFunc, text: name, pos: start})
		default:
			start := i
			two := ""
			if i+1 < len(runes) {
				two = string(runes[i : i+2])
			}
			switch {
			case two == "**":
				tokens = append(tokens, token{kind: tokenPower, text: two, pos: start})
				i += 2
			case two == "<=":
				tokens = append(tokens, token{kind: tokenLE, text: two, pos: start})
				i += 2
			case two == ">=":
				tokens = append(tokens, token{kind: tokenGE, text: two, pos: start})
				i += 2
			case two == "==":
				tokens = append(tokens, token{kind: tokenEQ, text: two, pos: start})
				i += 2
			case two == "!=":
				tokens = append(tokens, token{kind: tokenNE, text: two, pos: start})
				i += 2
			case r == '+':
				tokens = append(tokens, token{kind: tokenPlus, text: "+", pos: start})
				i++
			case r == '-':
				tokens = append(tokens, token{kind: tokenMinus, text: "-", pos: start})
				i++
			case r == '*':
				tokens = append(tokens, token{kind: tokenStar, text: "*", pos: start})
				i++
			case r == '/':
				tokens = append(tokens, token{kind: tokenSlash, text: "/", pos: start})
				i++
			case r == '%':
				tokens = append(tokens, token{kind: tokenPercent, text: "%", pos: start})
				i++
			case r == '(':
				tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: start})
				i++
			case r == ')':
				tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: start})
				i++
			case r == ',':
				tokens = append(tokens, token{kind: tokenComma, text: ",", pos: start})
				i++
			case r == '<':
				tokens = append(tokens, token{kind: tokenLT, text: "<", pos: start})
				i++
			case r == '>':
				tokens = append(tokens, token{kind: tokenGT, text: ">", pos: start})
				i++
			case r == '?':
				tokens = append(tokens, token{kind: tokenQuestion, text: "?", pos: start})
				i++
			case r == ':':
				tokens = append(tokens, token{kind: tokenColon, text: ":", pos: start})
				i++
			default:
				return nil, fmt.Errorf("illegal character %q at position %d", string(r), start)
			}
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(runes)})
	return tokens, nil
}

func isUpperIdent(s string) bool {
	if s == "" || !unicode.IsUpper(rune(s[0])) {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsUpper(r) && !unicode.IsDigit(r) && r != '_'
	}) == -1
}
