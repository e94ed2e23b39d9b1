package diag

// Kind classifies a fatal diagnostic. The set is closed: golden files and
// the JSON renderer depend on the spelling, so new kinds are a breaking
// change.
type Kind uint8

const (
	// KindCompileError is a semantic error raised while expanding or
	// checking forms.
	KindCompileError Kind = iota
	// KindTokenMissingError means input ended before a construct was
	// complete.
	KindTokenMissingError
	// KindSyntaxError is malformed input the parser rejected.
	KindSyntaxError
)

func (k Kind) String() string {
	switch k {
	case KindCompileError:
		return "CompileError"
	case KindTokenMissingError:
		return "TokenMissingError"
	case KindSyntaxError:
		return "SyntaxError"
	}
	return "UNKNOWN"
}
