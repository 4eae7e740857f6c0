package corpus

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	apperrors "github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/corpus-concordance/pkg/logger"
)

// lineBreaks strips Unix and Windows line endings, as well as a bare CR,
// fusing adjacent lines.
var lineBreaks = strings.NewReplacer("\r\n", "", "\r", "", "\n", "")

// Load reads every regular file in dir whose name matches pattern. The
// directory is not descended into. Documents are ordered by file name and
// numbered from 0. Any unreadable or non-UTF-8 file aborts the load.
func Load(ctx context.Context, dir string, pattern string) ([]Document, error) {
	log := logger.FromContext(ctx).With("component", "corpus-loader")
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, apperrors.Configf(apperrors.ErrInvalidConfig, "bad corpus pattern %q: %v", pattern, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Configf(apperrors.ErrDirectoryNotFound, "the path specified does not exist: %s", dir)
		}
		return nil, apperrors.Inputf(apperrors.ErrInputRead, "reading directory %s: %v", dir, err)
	}

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.Inputf(apperrors.ErrInputRead, "reading %s: %v", path, err)
		}
		if !utf8.Valid(data) {
			return nil, apperrors.Inputf(apperrors.ErrInvalidEncoding, "%s is not valid UTF-8", path)
		}
		doc := Document{
			ID:   len(docs),
			Name: entry.Name(),
			Text: lineBreaks.Replace(string(data)),
		}
		docs = append(docs, doc)
		log.Debug("document loaded",
			"doc_id", doc.ID,
			"name", doc.Name,
			"bytes", len(data),
		)
	}
	log.Info("corpus loaded", "directory", dir, "documents", len(docs))
	return docs, nil
}
