package core

import (
	"strconv"
	"strings"
)

// Phase represents the execution phase the firmware is currently in. It is
// a bit set so that a console scope can be compared against it with a single
// AND.
type Phase uint8

const (
	// PhaseBoot covers everything up to the hand-off to the runtime services
	PhaseBoot Phase = 1 << iota
	// PhaseRuntime covers runtime services after boot completed
	PhaseRuntime
	// PhaseCrash is entered when reporting an unrecoverable exception
	PhaseCrash

	// PhaseAll is the union of all defined phases
	PhaseAll = PhaseBoot | PhaseRuntime | PhaseCrash
)

var phaseNames = [...]struct {
	phase Phase
	name  string
}{
	{PhaseBoot, "boot"},
	{PhaseRuntime, "runtime"},
	{PhaseCrash, "crash"},
}

// String returns the phase bits joined by "|", e.g. "boot|runtime"
func (p Phase) String() string {
	if p == 0 {
		return "none"
	}
	var sb strings.Builder
	for _, pn := range phaseNames {
		if p&pn.phase == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(pn.name)
	}
	if rest := p &^ PhaseAll; rest != 0 {
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString("0x")
		sb.WriteString(strconv.FormatUint(uint64(rest), 16))
	}
	return sb.String()
}

// ParsePhase converts a phase name to a Phase. Names are case-insensitive and
// may be joined with "|" or ",". Unknown names yield ok=false.
func ParsePhase(s string) (Phase, bool) {
	var p Phase
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		bit, ok := phaseByName(strings.TrimSpace(part))
		if !ok {
			return 0, false
		}
		p |= bit
	}
	return p, p != 0
}

func phaseByName(name string) (Phase, bool) {
	switch strings.ToLower(name) {
	case "boot":
		return PhaseBoot, true
	case "runtime", "rt":
		return PhaseRuntime, true
	case "crash", "exception", "panic":
		return PhaseCrash, true
	case "all":
		return PhaseAll, true
	default:
		return 0, false
	}
}
