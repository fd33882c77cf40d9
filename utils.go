package sitepipe

type setStr map[string]struct{}

// insert adds v and reports whether it was already present.
func (s setStr) insert(v string) bool {
	_, ok := s[v]
	s[v] = struct{}{}

	return ok
}
