package verdict

// Flattened is the field-keyed projection of an issue sequence, shaped for
// logging, form binding, and snapshot comparison.
//
// Root collects messages whose path is the document root. Fields maps a
// rendered JSON Pointer to the ordered messages reported for that pointer.
// Keys preserves first-occurrence order of the Fields keys so that iteration
// stays deterministic across runs.
type Flattened struct {
	Root   []string            `json:"root,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
	Keys   []string            `json:"-"`
}

// Flatten projects issues into a Flattened. It is total and lossless: every
// issue lands in exactly one bucket, so Len() always equals len(iss).
func Flatten(iss Issues) Flattened {
	fl := Flattened{Fields: map[string][]string{}}
	for _, it := range iss {
		msg := it.Message
		if msg == "" {
			msg = it.Code
		}
		if it.Path == "" || it.Path == "/" {
			fl.Root = append(fl.Root, msg)
			continue
		}
		if _, seen := fl.Fields[it.Path]; !seen {
			fl.Keys = append(fl.Keys, it.Path)
		}
		fl.Fields[it.Path] = append(fl.Fields[it.Path], msg)
	}
	return fl
}

// Len returns the total message count across Root and all field buckets.
func (f Flattened) Len() int {
	n := len(f.Root)
	for _, msgs := range f.Fields {
		n += len(msgs)
	}
	return n
}

// Field returns the messages recorded for the given pointer.
func (f Flattened) Field(path string) []string { return f.Fields[path] }

// Has reports whether any message was recorded for the given pointer.
func (f Flattened) Has(path string) bool { return len(f.Fields[path]) > 0 }
