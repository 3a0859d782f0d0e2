package model

import "time"

// Failure is the persisted form of an error record.
type Failure struct {
	ZIP       string    `json:"zip" yaml:"zip"`
	Stage     Stage     `json:"stage" yaml:"stage"`
	Error     string    `json:"error" yaml:"error"`
	ErrorType string    `json:"error_type" yaml:"error_type"` // "transient" or "permanent"
	FailedAt  time.Time `json:"failed_at" yaml:"failed_at"`
}

// FailureSet holds at most one failure per ZIP code, keeping the latest.
type FailureSet struct {
	items []Failure
	index map[string]int
}

// NewFailureSet creates a set holding fs.
func NewFailureSet(fs ...Failure) *FailureSet {
	s := &FailureSet{index: make(map[string]int, len(fs))}
	for _, f := range fs {
		s.Put(f)
	}
	return s
}

// Put stores f, replacing any earlier failure for the same ZIP.
func (s *FailureSet) Put(f Failure) {
	if i, ok := s.index[f.ZIP]; ok {
		s.items[i] = f
		return
	}
	s.index[f.ZIP] = len(s.items)
	s.items = append(s.items, f)
}

// Remove drops the failure for zip, if any.
func (s *FailureSet) Remove(zip string) {
	i, ok := s.index[zip]
	if !ok {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, zip)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ZIP] = j
	}
}

// Get returns the failure recorded for zip.
func (s *FailureSet) Get(zip string) (Failure, bool) {
	i, ok := s.index[zip]
	if !ok {
		return Failure{}, false
	}
	return s.items[i], true
}

// All returns the failures in insertion order.
func (s *FailureSet) All() []Failure {
	out := make([]Failure, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of failures.
func (s *FailureSet) Len() int {
	return len(s.items)
}
