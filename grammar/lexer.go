package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var StaveLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments run from backslash to end of line
		{Name: "Comment", Pattern: `\\[^\n]*`, Action: nil},

		// Separator inside stack-effect signatures: ( a b -- c )
		{Name: "DashDash", Pattern: `--`, Action: nil},

		// Control words are their own token type so that a plain Word
		// capture can never swallow them (keeps @@* repetition bounded)
		{Name: "Keyword", Pattern: `\b(if|else|then|begin|while|repeat|until|do|loop)\b`, Action: nil},

		// Integer literals, optionally negative
		{Name: "Integer", Pattern: `-?[0-9]+`, Action: nil},

		// Punctuation
		{Name: "Punct", Pattern: `[():;]`, Action: nil},

		// Any other whitespace-delimited token is a word
		{Name: "Word", Pattern: `[^ \t\r\n():;\\]+`, Action: nil},

		{Name: "Whitespace", Pattern: `[ \t\r\n]+`, Action: nil},
	},
})
