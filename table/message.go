package table

import nt "atelier/entity"

type TableMsg interface {
	isTableMsg()
}

func (SizeMsg) isTableMsg()    {}
func (PageMsg) isTableMsg()    {}
func (LoadingMsg) isTableMsg() {}
func (ResetMsg) isTableMsg()   {}
func (SelectMsg) isTableMsg()  {}

type SizeMsg struct {
	Width  int
	Height int
}

// PageMsg replaces the grid's rows and pagination from the store.
type PageMsg struct {
	Rows []nt.Record
	Page nt.Page
}

// LoadingMsg marks the grid busy while a fetch is in flight.
type LoadingMsg struct{}

// ResetMsg returns the selection to the top of the first page.
type ResetMsg struct{}

// SelectMsg moves the selection to an index within the page, so it can
// follow a row moved by reorder.
type SelectMsg struct {
	Index int
}
