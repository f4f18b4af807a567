package syntax

import "fmt"

// Kind tags every token and node in the syntax tree.
type Kind int

const (
	// Trivia
	TokenWhitespace Kind = iota // spaces, tabs, newlines
	TokenComment                // # line or /* block */

	// Keywords
	TokenAssert  // assert
	TokenElse    // else
	TokenIf      // if
	TokenIn      // in
	TokenInherit // inherit
	TokenLet     // let
	TokenOr      // or
	TokenRec     // rec
	TokenThen    // then
	TokenWith    // with

	// Punctuation
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLBracket // [
	TokenRBracket // ]
	TokenLParen   // (
	TokenRParen   // )
	TokenSemi     // ;
	TokenComma    // ,
	TokenDot      // .
	TokenEllipsis // ...
	TokenAssign   // =
	TokenQuestion // ?
	TokenColon    // :
	TokenAt       // @

	// Operators
	TokenConcat   // ++
	TokenMul      // *
	TokenDiv      // /
	TokenAdd      // +
	TokenSub      // -
	TokenNot      // !
	TokenUpdate   // //
	TokenLess     // <
	TokenLessEq   // <=
	TokenMore     // >
	TokenMoreEq   // >=
	TokenEqual    // ==
	TokenNotEqual // !=
	TokenAnd      // &&
	TokenOrOr     // ||
	TokenImplies  // ->

	// Literals
	TokenIdent       // foo
	TokenInt         // 42
	TokenFloat       // 4.2
	TokenPath        // ./foo
	TokenPathContent // ./foo/ before an interpolation
	TokenSearchPath  // <nixpkgs>
	TokenUri         // https://example.org

	// Strings
	TokenStringStart    // "
	TokenStringEnd      // "
	TokenIndStringStart // ''
	TokenIndStringEnd   // ''
	TokenStringContent  // literal text inside a string
	TokenInterpolStart  // ${
	TokenInterpolEnd    // } closing an interpolation

	TokenError // unlexable input

	// Nodes
	NodeRoot
	NodeAttrSet
	NodeKeyValue
	NodeAttrpath
	NodeDynamic
	NodeInherit
	NodeInheritFrom
	NodeString
	NodePath
	NodeInterpol
	NodeList
	NodeParen
	NodeLambda
	NodePattern
	NodePatEntry
	NodePatBind
	NodeLetIn
	NodeWith
	NodeAssert
	NodeIfElse
	NodeApply
	NodeSelect
	NodeHasAttr
	NodeBinOp
	NodeUnaryOp
	NodeError

	kindCount
)

// firstNodeKind marks where node kinds begin in the enumeration.
const firstNodeKind = NodeRoot

var kindNames = [kindCount]string{
	TokenWhitespace:     "Whitespace",
	TokenComment:        "Comment",
	TokenAssert:         "assert",
	TokenElse:           "else",
	TokenIf:             "if",
	TokenIn:             "in",
	TokenInherit:        "inherit",
	TokenLet:            "let",
	TokenOr:             "or",
	TokenRec:            "rec",
	TokenThen:           "then",
	TokenWith:           "with",
	TokenLBrace:         "{",
	TokenRBrace:         "}",
	TokenLBracket:       "[",
	TokenRBracket:       "]",
	TokenLParen:         "(",
	TokenRParen:         ")",
	TokenSemi:           ";",
	TokenComma:          ",",
	TokenDot:            ".",
	TokenEllipsis:       "...",
	TokenAssign:         "=",
	TokenQuestion:       "?",
	TokenColon:          ":",
	TokenAt:             "@",
	TokenConcat:         "++",
	TokenMul:            "*",
	TokenDiv:            "/",
	TokenAdd:            "+",
	TokenSub:            "-",
	TokenNot:            "!",
	TokenUpdate:         "//",
	TokenLess:           "<",
	TokenLessEq:         "<=",
	TokenMore:           ">",
	TokenMoreEq:         ">=",
	TokenEqual:          "==",
	TokenNotEqual:       "!=",
	TokenAnd:            "&&",
	TokenOrOr:           "||",
	TokenImplies:        "->",
	TokenIdent:          "Ident",
	TokenInt:            "Int",
	TokenFloat:          "Float",
	TokenPath:           "Path",
	TokenPathContent:    "PathContent",
	TokenSearchPath:     "SearchPath",
	TokenUri:            "Uri",
	TokenStringStart:    "StringStart",
	TokenStringEnd:      "StringEnd",
	TokenIndStringStart: "IndStringStart",
	TokenIndStringEnd:   "IndStringEnd",
	TokenStringContent:  "StringContent",
	TokenInterpolStart:  "${",
	TokenInterpolEnd:    "InterpolEnd",
	TokenError:          "ErrorToken",
	NodeRoot:            "Root",
	NodeAttrSet:         "AttrSet",
	NodeKeyValue:        "KeyValue",
	NodeAttrpath:        "Attrpath",
	NodeDynamic:         "Dynamic",
	NodeInherit:         "Inherit",
	NodeInheritFrom:     "InheritFrom",
	NodeString:          "String",
	NodePath:            "PathNode",
	NodeInterpol:        "Interpol",
	NodeList:            "List",
	NodeParen:           "Paren",
	NodeLambda:          "Lambda",
	NodePattern:         "Pattern",
	NodePatEntry:        "PatEntry",
	NodePatBind:         "PatBind",
	NodeLetIn:           "LetIn",
	NodeWith:            "With",
	NodeAssert:          "Assert",
	NodeIfElse:          "IfElse",
	NodeApply:           "Apply",
	NodeSelect:          "Select",
	NodeHasAttr:         "HasAttr",
	NodeBinOp:           "BinOp",
	NodeUnaryOp:         "UnaryOp",
	NodeError:           "ErrorNode",
}

// keywords maps keyword spellings to their token kinds.
var keywords = map[string]Kind{
	"assert":  TokenAssert,
	"else":    TokenElse,
	"if":      TokenIf,
	"in":      TokenIn,
	"inherit": TokenInherit,
	"let":     TokenLet,
	"or":      TokenOr,
	"rec":     TokenRec,
	"then":    TokenThen,
	"with":    TokenWith,
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsNode reports whether k tags a node rather than a token.
func (k Kind) IsNode() bool {
	return k >= firstNodeKind && k < kindCount
}

// IsTrivia reports whether k is a comment or whitespace token.
func (k Kind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenComment
}

// NodeKinds returns every node kind in declaration order.
func NodeKinds() []Kind {
	kinds := make([]Kind, 0, kindCount-firstNodeKind)
	for k := firstNodeKind; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// KindCount is the number of kinds, usable to size lookup tables.
const KindCount = int(kindCount)
