package xl

import "strconv"

const (
	// DefaultStyleName is the reserved name of the workbook default style.
	DefaultStyleName = "Default"
	defaultStyleID   = "Default"
	normalStyleLabel = "Normal"
	firstStyleNumber = 20
)

// Styles is the style registry of a workbook.
type Styles struct {
	list   []*Style
	byName map[string]*Style // display name -> last added style
	nextN  int
}

func newStyles() *Styles {
	return &Styles{
		byName: map[string]*Style{},
		nextN:  firstStyleNumber,
	}
}

// Add registers a new style with default formatting and returns it for
// modification.
//
// The reserved name "Default" produces the default style (ID "Default",
// display name "Normal"). Any other name receives the next "s<n>" ID,
// numbered from 20 upwards.
func (ss *Styles) Add(name string) *Style {
	var st *Style
	if name == DefaultStyleName {
		st = newStyle(normalStyleLabel, defaultStyleID)
	} else {
		st = newStyle(name, "s"+strconv.Itoa(ss.nextN))
		ss.nextN++
	}
	ss.list = append(ss.list, st)
	ss.byName[st.name] = st
	return st
}

// ResolveID returns the ID of the last added style whose display name is
// name, or "" if there is none. An empty name never resolves.
func (ss *Styles) ResolveID(name string) string {
	if name == "" {
		return ""
	}
	if st, ok := ss.byName[name]; ok {
		return st.id
	}
	return ""
}

// Lookup returns the style ResolveID would resolve to.
func (ss *Styles) Lookup(name string) *Style {
	if name == "" {
		return nil
	}
	return ss.byName[name]
}

// All returns the styles in registration order.
func (ss *Styles) All() []*Style {
	return ss.list
}

func (ss *Styles) Len() int {
	return len(ss.list)
}

// Shadowed maps every display name registered more than once to the IDs
// carrying it, in registration order. Only the last ID is reachable by name.
func (ss *Styles) Shadowed() map[string][]string {
	ids := map[string][]string{}
	for _, st := range ss.list {
		ids[st.name] = append(ids[st.name], st.id)
	}
	for n, v := range ids {
		if len(v) < 2 {
			delete(ids, n)
		}
	}
	return ids
}
