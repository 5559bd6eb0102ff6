package types

// CheckItem pairs a literal marker with the human label reported for it.
type CheckItem struct {
	Marker string `json:"marker"`
	Label  string `json:"label"`
}

// Checklist is an ordered, read-only list of markers evaluated by the
// integrity checker.
type Checklist []CheckItem

// Labels returns the labels in checklist order.
func (c Checklist) Labels() []string {
	labels := make([]string, len(c))
	for i, item := range c {
		labels[i] = item.Label
	}
	return labels
}
