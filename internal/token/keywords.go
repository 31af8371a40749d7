package token

var keywords = map[string]Kind{
	"val":   KwVal,
	"fn":    KwFn,
	"true":  KwTrue,
	"false": KwFalse,
}

// LookupKeyword maps an identifier to its keyword kind.
// Returns (Ident, false) when s is not a keyword.
func LookupKeyword(s string) (Kind, bool) {
	if k, ok := keywords[s]; ok {
		return k, true
	}
	return Ident, false
}
