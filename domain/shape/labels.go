package shape

// Labels lists the agriculture classes the external detector distinguishes.
// A label's index doubles as its class ID in exported payloads.
var Labels = []string{"vine", "fruit", "tree", "gap", "disease", "weed", "soil"}

// LabelClassID maps a label to its class ID. Unknown labels map to 0 so
// imports with custom classes still render and export.
func LabelClassID(label string) int {
	for i, l := range Labels {
		if l == label {
			return i
		}
	}
	return 0
}
