package render

import (
	"github.com/alecthomas/chroma/v2"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
)

// branchTypes are the chroma token types used for the rotating branch and
// argument highlight colors.
var branchTypes = []chroma.TokenType{
	chroma.NameTag,
	chroma.NameAttribute,
	chroma.NameClass,
	chroma.NameConstant,
	chroma.NameDecorator,
	chroma.NameEntity,
	chroma.NameException,
	chroma.NameNamespace,
}

// DisasmDark is the default chroma style for instruction diffs.
var DisasmDark = chromastyles.Register(chroma.MustNewStyle("disasm-dark", chroma.StyleEntries{
	chroma.Text:       "#FFFFFF",
	chroma.Background: "bg:#1e1e1e",

	chroma.Comment:         "#7C7C7C", // line numbers
	chroma.NameLabel:       "#4F4F4F", // addresses
	chroma.Keyword:         "#FFFFFF", // mnemonics
	chroma.KeywordReserved: "#FF5F5F", // mismatched mnemonics
	chroma.NameVariable:    "#7C9C9D", // registers
	chroma.LiteralNumber:   "#FF5F87",
	chroma.NameFunction:    "#FFD700", // symbols
	chroma.Punctuation:     "#FFFFFF",
	chroma.GenericInserted: "#87D787",
	chroma.GenericDeleted:  "#FF5F5F",

	chroma.NameTag:       "#5FAFFF",
	chroma.NameAttribute: "#FF87D7",
	chroma.NameClass:     "#87D787",
	chroma.NameConstant:  "#FFD75F",
	chroma.NameDecorator: "#AF87FF",
	chroma.NameEntity:    "#5FD7D7",
	chroma.NameException: "#FFAF5F",
	chroma.NameNamespace: "#D7D7AF",
}))
