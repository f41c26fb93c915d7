// Package theme keeps exactly one theme class on a page body and remembers
// the choice between visits.
package theme

import (
	"slices"
	"strings"
	"sync"
)

const (
	// StorageKey is the key the preference is stored under.
	StorageKey = "blog-theme-preference"
	// ClassPrefix marks the class family a theme belongs to.
	ClassPrefix = "theme-"
	// Default is applied when nothing is stored.
	Default = "theme-light"
)

// ClassList is the set of classes on the page body.
type ClassList interface {
	Classes() []string
	Add(class string)
	Remove(class string)
}

// Storage persists a single string per key.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Restrict wraps store so stored values outside allowed read as unset.
func Restrict(store Storage, allowed []string) Storage {
	return restricted{Storage: store, allowed: allowed}
}

type restricted struct {
	Storage
	allowed []string
}

func (r restricted) Get(key string) (string, bool) {
	v, ok := r.Storage.Get(key)
	if !ok || !slices.Contains(r.allowed, v) {
		return "", false
	}
	return v, true
}

// Switcher applies and persists the theme preference.
type Switcher struct {
	classes ClassList
	store   Storage
}

// NewSwitcher returns a Switcher over classes backed by store.
func NewSwitcher(classes ClassList, store Storage) *Switcher {
	return &Switcher{classes: classes, store: store}
}

// Init reapplies the stored preference, or Default when none is stored.
func (s *Switcher) Init() error {
	value, ok := s.store.Get(StorageKey)
	if !ok || value == "" {
		s.apply(Default)
		return nil
	}
	s.apply(value)
	return nil
}

// Set makes value the only active theme class and stores it. An empty value
// selects Default.
func (s *Switcher) Set(value string) error {
	if value == "" {
		value = Default
	}
	s.apply(value)
	return s.store.Set(StorageKey, value)
}

// Get returns the active theme: the stored preference, else the theme class
// already on the body, else Default.
func (s *Switcher) Get() string {
	if value, ok := s.store.Get(StorageKey); ok && value != "" {
		return value
	}
	for _, c := range s.classes.Classes() {
		if strings.HasPrefix(c, ClassPrefix) {
			return c
		}
	}
	return Default
}

func (s *Switcher) apply(value string) {
	for _, c := range s.classes.Classes() {
		if strings.HasPrefix(c, ClassPrefix) && c != value {
			s.classes.Remove(c)
		}
	}
	s.classes.Add(value)
}

// ClassSet is an ordered ClassList.
type ClassSet struct {
	mu      sync.Mutex
	classes []string
}

// NewClassSet returns a ClassSet holding classes with duplicates dropped.
func NewClassSet(classes ...string) *ClassSet {
	cs := &ClassSet{}
	for _, c := range classes {
		cs.Add(c)
	}
	return cs
}

// Classes returns a copy of the classes in insertion order.
func (cs *ClassSet) Classes() []string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]string(nil), cs.classes...)
}

func (cs *ClassSet) Add(class string) {
	if class == "" {
		return
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for _, c := range cs.classes {
		if c == class {
			return
		}
	}
	cs.classes = append(cs.classes, class)
}

func (cs *ClassSet) Remove(class string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for i, c := range cs.classes {
		if c == class {
			cs.classes = append(cs.classes[:i], cs.classes[i+1:]...)
			return
		}
	}
}

// Contains reports whether class is present.
func (cs *ClassSet) Contains(class string) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for _, c := range cs.classes {
		if c == class {
			return true
		}
	}
	return false
}

// String joins the classes for a class attribute.
func (cs *ClassSet) String() string {
	return strings.Join(cs.Classes(), " ")
}
