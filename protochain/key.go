package protochain

type (
	// Symbol is a unique property key. Symbols are compared by identity, the
	// description is informational only.
	Symbol struct {
		description string
	}

	// Key identifies a property, either by string name or by [Symbol].
	// The zero value is the empty string key.
	Key struct {
		sym  *Symbol
		name string
	}
)

// NewSymbol returns a new, unique symbol.
func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

// Description returns the description the symbol was created with.
func (x *Symbol) Description() string {
	if x == nil {
		return ``
	}
	return x.description
}

func (x *Symbol) String() string {
	return `Symbol(` + x.Description() + `)`
}

// StringKey returns the key for the named string property.
func StringKey(name string) Key {
	return Key{name: name}
}

// SymbolKey returns the key for the given symbol. It panics if sym is nil.
func SymbolKey(sym *Symbol) Key {
	if sym == nil {
		panic(`protochain: nil symbol`)
	}
	return Key{sym: sym}
}

// IsSymbol reports whether the key is a symbol key.
func (x Key) IsSymbol() bool { return x.sym != nil }

// Name returns the string name, or "" for symbol keys.
func (x Key) Name() string { return x.name }

// Symbol returns the symbol, or nil for string keys.
func (x Key) Symbol() *Symbol { return x.sym }

func (x Key) String() string {
	if x.sym != nil {
		return x.sym.String()
	}
	return x.name
}
