package models

// SelectionKind tells the caller what the user asked for at the menu.
type SelectionKind int

const (
	SelectIndices SelectionKind = iota
	SelectAll
	SelectQuit
	SelectNext
)

func (k SelectionKind) String() string {
	switch k {
	case SelectIndices:
		return "indices"
	case SelectAll:
		return "all"
	case SelectQuit:
		return "quit"
	case SelectNext:
		return "next"
	default:
		return "unknown"
	}
}

// Selection is the resolved form of one line of menu input. Indices holds
// distinct 1-based positions in the order they were typed.
type Selection struct {
	Kind    SelectionKind
	Indices []int
}

// Pick returns the selected releases from rs in selection order.
func (s Selection) Pick(rs *ResultSet) []ReleaseRecord {
	switch s.Kind {
	case SelectAll:
		return rs.Records()
	case SelectIndices:
		out := make([]ReleaseRecord, 0, len(s.Indices))
		for _, i := range s.Indices {
			if i >= 1 && i <= rs.Len() {
				out = append(out, rs.At(i))
			}
		}
		return out
	default:
		return nil
	}
}
