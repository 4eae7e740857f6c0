// Package corpus loads the documents and the stop-word list a concordance
// run works on.
package corpus

// Document is one input file. ID is the position in load order and Text is
// the file content with every newline removed.
type Document struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Text string `json:"-"`
}

// Texts returns the document texts in load order.
func Texts(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Text
	}
	return out
}

// Names returns a lookup from document ID to name.
func Names(docs []Document) map[int]string {
	out := make(map[int]string, len(docs))
	for _, d := range docs {
		out[d.ID] = d.Name
	}
	return out
}
