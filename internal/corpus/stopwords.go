package corpus

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/errors"
)

// LoadStopWords reads the first row of a comma-delimited file. Fields are
// trimmed of spaces and empty fields are skipped. An empty path yields no
// stop words.
func LoadStopWords(path string) ([]string, error) {
	if path == "" {
		return []string{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Inputf(apperrors.ErrInputRead, "opening stop-word list %s: %v", path, err)
	}
	defer f.Close()
	return ReadStopWords(f)
}

// ReadStopWords parses the first CSV row from r.
func ReadStopWords(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	record, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil
	}
	if err != nil {
		return nil, apperrors.Inputf(apperrors.ErrInputRead, "parsing stop-word list: %v", err)
	}
	words := make([]string, 0, len(record))
	for _, field := range record {
		field = strings.Trim(field, " ")
		if field == "" {
			continue
		}
		words = append(words, field)
	}
	return words, nil
}
