package pipeline

// Selection is the currently active stage, or none.
// The zero value is None.
type Selection struct {
	stage Stage
	ok    bool
}

// None returns the empty selection.
func None() Selection {
	return Selection{}
}

// Selected returns a selection of s.
func Selected(s Stage) Selection {
	return Selection{stage: s, ok: true}
}

// Stage returns the selected stage and true, or false when nothing is selected.
func (sel Selection) Stage() (Stage, bool) {
	return sel.stage, sel.ok
}

// IsNone reports whether no stage is selected.
func (sel Selection) IsNone() bool {
	return !sel.ok
}

// Is reports whether s is the selected stage.
func (sel Selection) Is(s Stage) bool {
	return sel.ok && sel.stage == s
}

func (sel Selection) String() string {
	if !sel.ok {
		return "none"
	}
	return sel.stage.String()
}

// ParseSelection accepts a stage name, or "" / "none" for None.
func ParseSelection(name string) (Selection, error) {
	if name == "" || name == "none" {
		return None(), nil
	}
	s, err := ParseStage(name)
	if err != nil {
		return None(), err
	}
	return Selected(s), nil
}

// Toggle returns the selection that results from clicking clicked while
// active is selected: clicking the active stage clears the selection.
func Toggle(active Selection, clicked Stage) Selection {
	if active.Is(clicked) {
		return None()
	}
	return Selected(clicked)
}
