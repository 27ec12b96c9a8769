package conf

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

// Kind classifies a token.
type Kind int

const (
	TokenIdentifier Kind = iota // identifier
	TokenOpenBrace              // {
	TokenCloseBrace             // }
	TokenSemicolon              // ;
	TokenComment                // comment
	TokenEOF                    // end of input
)

// Token is a lexical unit with the 1-based position of its first character.
// For quoted strings Value holds the unescaped text; for comments it holds
// the text after '#'.
type Token struct {
	Kind   Kind
	Value  string
	Line   int
	Column int
}

// describe returns a short human-readable form of t for error messages.
func (t Token) describe() string {
	switch t.Kind {
	case TokenIdentifier:
		return "identifier \"" + t.Value + "\""
	case TokenComment:
		return "comment"
	case TokenEOF:
		return "end of input"
	default:
		return "\"" + t.Kind.String() + "\""
	}
}
