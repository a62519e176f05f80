package filter

type FilterMsg interface {
	isFilterMsg()
}

func (SizeMsg) isFilterMsg()     {}
func (debounceMsg) isFilterMsg() {}

type SizeMsg struct {
	Width  int
	Height int
}

// debounceMsg fires a deferred auto-search; stale generations are ignored.
type debounceMsg struct {
	seq int
}
