package model

// Ledger is the ordered, deduplicated set of ZIP codes already attempted.
type Ledger struct {
	order []string
	seen  map[string]struct{}
}

// NewLedger creates a ledger holding zips, dropping duplicates.
func NewLedger(zips ...string) *Ledger {
	l := &Ledger{seen: make(map[string]struct{}, len(zips))}
	for _, z := range zips {
		l.Add(z)
	}
	return l
}

// Add records zip. It returns false if zip was already present.
func (l *Ledger) Add(zip string) bool {
	if _, ok := l.seen[zip]; ok {
		return false
	}
	l.seen[zip] = struct{}{}
	l.order = append(l.order, zip)
	return true
}

// Contains reports whether zip has been recorded.
func (l *Ledger) Contains(zip string) bool {
	_, ok := l.seen[zip]
	return ok
}

// ZIPs returns the recorded ZIP codes in insertion order.
func (l *Ledger) ZIPs() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Len returns the number of recorded ZIP codes.
func (l *Ledger) Len() int {
	return len(l.order)
}
