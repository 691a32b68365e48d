package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type Program struct {
	Defs []*Definition `@@*`
}

type Definition struct {
	Pos    lexer.Position
	Name   string  `":" @Word`
	Effect *Effect `@@`
	Body   []*Term `@@* ";"`
}

// Effect is the stack-effect signature ( a b -- c ). It is mandatory: the
// declared counts are the input contract of the IR stage.
type Effect struct {
	Params  []string `"(" @Word*`
	Results []string `"--" @Word* ")"`
}

type Term struct {
	Pos    lexer.Position
	Number *int64     `  @Integer`
	If     *IfTerm    `| @@`
	Begin  *BeginTerm `| @@`
	Do     *DoTerm    `| @@`
	Word   string     `| @Word`
}

type IfTerm struct {
	Pos  lexer.Position
	Then []*Term   `"if" @@*`
	Else *ElseTail `@@? "then"`
}

type ElseTail struct {
	Body []*Term `"else" @@*`
}

// BeginTerm covers both loop forms that open with "begin":
// "begin head while body repeat" and "begin head until".
type BeginTerm struct {
	Pos   lexer.Position
	Head  []*Term    `"begin" @@*`
	While *WhileTail `( @@`
	Until bool       `| @"until" )`
}

type WhileTail struct {
	Body []*Term `"while" @@* "repeat"`
}

type DoTerm struct {
	Pos  lexer.Position
	Body []*Term `"do" @@* "loop"`
}
