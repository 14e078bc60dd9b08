package codegen

// scope is a translation table for the duration of one file's
// generation: an immutable base table shared by the whole target plus a
// short-lived overlay holding the custom types visible to that file.
//
// A fresh scope per file (instead of mutating and restoring one shared
// map) keeps names from leaking across unrelated files and makes
// concurrent per-file generation safe without locking.
type scope struct {
	base  map[string]Mapping
	local map[string]Mapping
}

// newScope creates a scope over a backend's base table
func newScope(base map[string]Mapping) *scope {
	return &scope{
		base:  base,
		local: make(map[string]Mapping),
	}
}

// add registers a custom type for the current file
func (s *scope) add(name string, m Mapping) {
	s.local[name] = m
}

// lookup resolves a type name, overlay first
func (s *scope) lookup(name string) (Mapping, bool) {
	if m, ok := s.local[name]; ok {
		return m, true
	}
	m, ok := s.base[name]
	return m, ok
}

// isCustom reports whether name is a file-scoped custom type
func (s *scope) isCustom(name string) bool {
	_, ok := s.local[name]
	return ok
}
