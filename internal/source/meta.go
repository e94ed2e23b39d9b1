package source

// Meta carries the positional metadata the front-end attaches to a syntax
// node. The zero value means the node carries no metadata at all.
//
// Nodes spliced in from another file (generated code, inlined templates)
// keep their origin: File names that file and Keep holds the line within
// it. Line is always the line in the file currently being compiled.
type Meta struct {
	Line int    // 0 = unknown
	File string // "" = no override
	Keep int    // line inside File, meaningful only with an override
}

// Resolve picks the most accurate (file, line) for a diagnostic. An
// explicit File override wins together with its Keep line, even when Keep
// is zero. Otherwise the node's own Line inside fallback is used. A zero
// Meta resolves to (fallback, 0). Never fails.
func (m Meta) Resolve(fallback string) (string, int) {
	if m.File != "" {
		return m.File, m.Keep
	}
	return fallback, m.Line
}
