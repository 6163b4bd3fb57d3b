package encode

type EncodeOption func(*EncState)

func WithIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// WithKind adds a line with the problem's computed feature kind.
func WithKind(v bool) EncodeOption {
	return func(es *EncState) { es.kind = v }
}

func WithColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.color = c.Color }
}
