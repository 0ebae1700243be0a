package config

type (
	Table struct {
		// CaseInsensitive makes both construction and lookups fold ASCII letters, so "Foo",
		// "FOO" and "foo" are one and the same key. Only the first of them, in insertion
		// order, is stored.
		CaseInsensitive bool `test:"nullable"`
		// MaxKeyLength is the longest key accepted at construction. The table keeps a slot
		// per every possible length up to the longest present key, so unbounded keys would
		// mean unbounded memory.
		MaxKeyLength int
		// KeysPrealloc is the initial capacity of the flat key buffer, in bytes. If it's
		// lower than the total keys length, the buffer is sized exactly instead.
		KeysPrealloc int
	}

	Invocation struct {
		// Caching makes the invocation resolve the method just once, on its first call, and
		// call the resolved method directly afterward. It is correct only as long as the
		// receiver type, selector and arguments count stay the same across calls, therefore
		// disabled by default.
		Caching bool `test:"nullable"`
	}

	Dispatch struct {
		// ReflectFallback enables resolving selectors against arbitrary Go values via their
		// exported methods, when the receiver isn't an object.Object.
		ReflectFallback bool
		// LoggerName is the commonlog logger name used by the dispatcher.
		LoggerName string
	}
)

// Config holds settings used across the package: table construction limits, invocation
// caching policy and dispatch behaviour.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually.
type Config struct {
	Table      Table
	Invocation Invocation
	Dispatch   Dispatch
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Table: Table{
			CaseInsensitive: false,
			// keyword-like vocabularies rarely go past a few dozens of bytes. 1kb leaves
			// enough room for anything reasonable.
			MaxKeyLength: 1024,
			KeysPrealloc: 256,
		},
		Invocation: Invocation{
			Caching: false,
		},
		Dispatch: Dispatch{
			ReflectFallback: true,
			LoggerName:      "fastsend.dispatcher",
		},
	}
}
