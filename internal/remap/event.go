package remap

import (
	"slices"
	"sort"
	"sync"

	"github.com/coe-tools/idremap/internal/identity"
)

// Event records the resolution of one ID inside one document.
type Event struct {
	Document     string  `json:"document" yaml:"document"`
	OldID        int16   `json:"oldId" yaml:"oldId"`
	NewID        int16   `json:"newId" yaml:"newId"`
	Outcome      Outcome `json:"outcome" yaml:"outcome"`
	Namespace    string  `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	SymbolicName string  `json:"symbolicName,omitempty" yaml:"symbolicName,omitempty"`
	DisplayName  string  `json:"displayName,omitempty" yaml:"displayName,omitempty"`

	// Key is the identity key of the resolved identity, empty when the
	// old catalog had no record for OldID.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
}

func newEvent(doc string, res Result) Event {
	e := Event{
		Document:     doc,
		OldID:        res.OldID,
		NewID:        res.NewID,
		Outcome:      res.Outcome,
		Namespace:    res.Identity.Namespace,
		SymbolicName: res.Identity.SymbolicName,
		DisplayName:  res.Identity.DisplayName,
	}
	if res.Outcome != UnresolvedSource {
		id := res.Identity
		e.Key = identity.Key(id.Namespace, id.SymbolicName, id.DisplayName).String()
	}
	return e
}

// Observer receives remap events. Implementations must be safe for
// concurrent use when documents are remapped in parallel.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// Summary counts events per outcome.
type Summary struct {
	Remapped         int `json:"remapped" yaml:"remapped"`
	Unchanged        int `json:"unchanged" yaml:"unchanged"`
	UnresolvedSource int `json:"unresolvedSource" yaml:"unresolvedSource"`
	NamespaceDropped int `json:"namespaceDropped" yaml:"namespaceDropped"`
	MissingInTarget  int `json:"missingInTarget" yaml:"missingInTarget"`
}

// Add counts one event with outcome o.
func (s *Summary) Add(o Outcome) {
	switch o {
	case Remapped:
		s.Remapped++
	case Unchanged:
		s.Unchanged++
	case UnresolvedSource:
		s.UnresolvedSource++
	case NamespaceDropped:
		s.NamespaceDropped++
	case MissingInTarget:
		s.MissingInTarget++
	}
}

// Merge adds the counts of o to s.
func (s *Summary) Merge(o Summary) {
	s.Remapped += o.Remapped
	s.Unchanged += o.Unchanged
	s.UnresolvedSource += o.UnresolvedSource
	s.NamespaceDropped += o.NamespaceDropped
	s.MissingInTarget += o.MissingInTarget
}

// Count returns the number of events with outcome o.
func (s Summary) Count(o Outcome) int {
	switch o {
	case Remapped:
		return s.Remapped
	case Unchanged:
		return s.Unchanged
	case UnresolvedSource:
		return s.UnresolvedSource
	case NamespaceDropped:
		return s.NamespaceDropped
	case MissingInTarget:
		return s.MissingInTarget
	}
	return 0
}

// Total returns the number of IDs seen.
func (s Summary) Total() int {
	return s.Remapped + s.Unchanged + s.UnresolvedSource + s.NamespaceDropped + s.MissingInTarget
}

// Warnings returns the number of recoverable resolution failures.
func (s Summary) Warnings() int {
	return s.UnresolvedSource + s.NamespaceDropped
}

// Recorder accumulates events. The zero value is ready to use and safe for
// concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	total  Summary
	perDoc map[string]*Summary
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe records e.
func (r *Recorder) Observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	r.total.Add(e.Outcome)
	if r.perDoc == nil {
		r.perDoc = make(map[string]*Summary)
	}
	s, ok := r.perDoc[e.Document]
	if !ok {
		s = &Summary{}
		r.perDoc[e.Document] = s
	}
	s.Add(e.Outcome)
}

// Events returns the recorded events, optionally filtered to the given
// outcomes, ordered by document then old ID. Events for the same document
// and ID keep their arrival order.
func (r *Recorder) Events(outcomes ...Outcome) []Event {
	r.mu.Lock()
	out := make([]Event, 0, len(r.events))
	for _, e := range r.events {
		if len(outcomes) == 0 || containsOutcome(outcomes, e.Outcome) {
			out = append(out, e)
		}
	}
	r.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Document != out[j].Document {
			return out[i].Document < out[j].Document
		}
		return out[i].OldID < out[j].OldID
	})
	return out
}

// Absorb records every event of other, in other's arrival order.
func (r *Recorder) Absorb(other *Recorder) {
	other.mu.Lock()
	events := slices.Clone(other.events)
	other.mu.Unlock()

	for _, e := range events {
		r.Observe(e)
	}
}

// Summary returns counts over every recorded event.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// DocumentSummary returns counts for one document.
func (r *Recorder) DocumentSummary(doc string) Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.perDoc[doc]; ok {
		return *s
	}
	return Summary{}
}

func containsOutcome(list []Outcome, o Outcome) bool {
	for _, x := range list {
		if x == o {
			return true
		}
	}
	return false
}
