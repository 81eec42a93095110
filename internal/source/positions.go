package source

// Position is a specific location in source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}
