package session

// KeyKind identifies a discrete key event
type KeyKind int

const (
	KeyNone KeyKind = iota // no-op, e.g. a resize that only needs a redraw
	KeyRune
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyWordLeft
	KeyWordRight
	KeyDeleteWord
	KeyClearLine
	KeyInterrupt
)

// Key is one key event
type Key struct {
	Kind KeyKind
	Rune rune // set for KeyRune
}

// Rune returns a printable character key
func Rune(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// Keys turns s into a sequence of rune keys
func Keys(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		keys = append(keys, Rune(r))
	}
	return keys
}
