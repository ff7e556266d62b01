package core

import (
	"strings"
)

// Flags holds the per-console flag word. The low byte is the scope field,
// the remaining bits are console options that scope updates never touch.
type Flags uint16

const (
	// ScopeMask selects the scope field of a flag word
	ScopeMask Flags = 0x00ff

	// FlagTranslateCRLF makes the output path emit '\r' before every '\n'
	FlagTranslateCRLF Flags = 1 << 8
	// FlagEarly marks a console installed before the runtime console set
	FlagEarly Flags = 1 << 9
)

// Scope returns the scope bits of f as a Phase set
func (f Flags) Scope() Phase {
	return Phase(f & ScopeMask)
}

// WithScope returns f with its scope field replaced by mask. Bits outside the
// scope field are preserved.
func (f Flags) WithScope(mask Flags) Flags {
	return (f &^ ScopeMask) | (mask & ScopeMask)
}

// ActiveIn reports whether a console with these flags participates in
// dispatch while the system is in phase p
func (f Flags) ActiveIn(p Phase) bool {
	return Flags(p)&f&ScopeMask != 0
}

// ScopeOf converts a phase set into scope flag bits
func ScopeOf(p Phase) Flags {
	return Flags(p) & ScopeMask
}

// ParseScope converts a list of phase names into scope flag bits
func ParseScope(names []string) (Flags, bool) {
	var f Flags
	for _, name := range names {
		p, ok := ParsePhase(name)
		if !ok {
			return 0, false
		}
		f |= ScopeOf(p)
	}
	return f, true
}

// String renders the flag word as "scope=boot|crash,crlf,early"
func (f Flags) String() string {
	var sb strings.Builder
	sb.WriteString("scope=")
	sb.WriteString(f.Scope().String())
	if f&FlagTranslateCRLF != 0 {
		sb.WriteString(",crlf")
	}
	if f&FlagEarly != 0 {
		sb.WriteString(",early")
	}
	return sb.String()
}
