package index

// Posting records that a term occurs in one sentence.
type Posting struct {
	SentenceID int
	Frequency  int
}

// PostingList is ordered by ascending SentenceID.
type PostingList []Posting

// TermEntry pairs a term with its postings.
type TermEntry struct {
	Term     string
	Postings PostingList
}

// SentenceIDs returns the ids held by the list.
func (pl PostingList) SentenceIDs() []int {
	ids := make([]int, len(pl))
	for i, p := range pl {
		ids[i] = p.SentenceID
	}
	return ids
}

// Intersect returns the sentence ids present in every list, ascending. No
// lists yields nil.
func Intersect(lists ...PostingList) []int {
	if len(lists) == 0 {
		return nil
	}
	shortest := 0
	for i, l := range lists {
		if len(l) < len(lists[shortest]) {
			shortest = i
		}
	}
	result := lists[shortest].SentenceIDs()
	for i, l := range lists {
		if i == shortest {
			continue
		}
		result = intersectSorted(result, l)
		if len(result) == 0 {
			return result
		}
	}
	return result
}

func intersectSorted(ids []int, pl PostingList) []int {
	out := make([]int, 0, len(ids))
	i, j := 0, 0
	for i < len(ids) && j < len(pl) {
		switch {
		case ids[i] == pl[j].SentenceID:
			out = append(out, ids[i])
			i++
			j++
		case ids[i] < pl[j].SentenceID:
			i++
		default:
			j++
		}
	}
	return out
}
