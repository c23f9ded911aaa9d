package modifier

import (
	"time"

	"github.com/bulletbrawl/arena/internal/core/clock"
)

// Entry is a modifier currently applied to a player.
type Entry struct {
	Modifier StatModifier
	Timer    clock.Countdown
}

// Ledger tracks the power-up modifiers applied to one player. At most one
// instance per name is active; entries keep insertion order so expiry
// reverts in a stable order.
type Ledger struct {
	entries []*Entry
}

func NewLedger() *Ledger {
	return &Ledger{entries: make([]*Entry, 0, 4)}
}

func (l *Ledger) find(name string) int {
	for i, a := range l.entries {
		if a.Modifier.Name == name {
			return i
		}
	}
	return -1
}

// Grant applies m to s and registers it. If a modifier with the same name is
// already active only its timer is refreshed; the deltas are not applied
// again. Returns true when m was newly applied.
func (l *Ledger) Grant(s *Stats, m StatModifier) bool {
	if i := l.find(m.Name); i >= 0 {
		l.entries[i].Timer.Set(m.Duration)
		return false
	}
	Apply(s, m)
	l.entries = append(l.entries, &Entry{Modifier: m, Timer: clock.NewCountdown(m.Duration)})
	return true
}

// Revoke reverts and forgets the named modifier.
func (l *Ledger) Revoke(s *Stats, name string) bool {
	i := l.find(name)
	if i < 0 {
		return false
	}
	Remove(s, l.entries[i].Modifier)
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return true
}

// Tick advances timed modifiers and reverts the ones that ran out, returning
// their names.
func (l *Ledger) Tick(s *Stats, dt time.Duration) []string {
	var expired []string
	kept := l.entries[:0]
	for _, a := range l.entries {
		if a.Modifier.Timed() && a.Timer.Tick(dt) {
			Remove(s, a.Modifier)
			expired = append(expired, a.Modifier.Name)
			continue
		}
		kept = append(kept, a)
	}
	l.entries = kept
	return expired
}

// ExpireTimed force-expires every timed modifier.
func (l *Ledger) ExpireTimed(s *Stats) []string {
	var expired []string
	kept := l.entries[:0]
	for _, a := range l.entries {
		if a.Modifier.Timed() {
			Remove(s, a.Modifier)
			expired = append(expired, a.Modifier.Name)
			continue
		}
		kept = append(kept, a)
	}
	l.entries = kept
	return expired
}

func (l *Ledger) Has(name string) bool { return l.find(name) >= 0 }

func (l *Ledger) Get(name string) (*Entry, bool) {
	if i := l.find(name); i >= 0 {
		return l.entries[i], true
	}
	return nil, false
}

func (l *Ledger) Len() int { return len(l.entries) }

// Active lists active modifiers in application order.
func (l *Ledger) Active() []string {
	out := make([]string, len(l.entries))
	for i, a := range l.entries {
		out[i] = a.Modifier.Name
	}
	return out
}
