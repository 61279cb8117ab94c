// Package trail describes breadcrumb trails through the collection hierarchy.
package trail

// Crumb is one ancestor in a trail.
type Crumb struct {
	PID  string
	Name string
	URL  string
}

// Trail is ordered from the root collection down to the requested record.
type Trail []Crumb

// PIDs returns the identifiers along the trail.
func (t Trail) PIDs() []string {
	out := make([]string, len(t))
	for i, c := range t {
		out[i] = c.PID
	}
	return out
}
