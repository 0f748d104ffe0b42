package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/citectx/format"
	"github.com/tsawler/citectx/model"
)

// LoadOptions fills in document metadata that files do not carry.
type LoadOptions struct {
	// Source is applied to every document. Empty guesses it from the id.
	Source string

	// BaseURL resolves relative image paths. "{id}" is replaced by the
	// document id. Empty uses the source's conventional base URL.
	BaseURL string
}

// Discover expands paths into the documents to process. Directories are
// walked for supported extensions (.html, .htm, .xhtml, .xml, .nxml);
// files named explicitly are always included.
func Discover(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("discovering %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if format.Supported(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}
	return files, nil
}

// DocumentID derives a document id from a file name: the base name without
// its extension, so "2401.00001.html" becomes "2401.00001".
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExpandBaseURL replaces "{id}" in a base URL template.
func ExpandBaseURL(tmpl, id string) string {
	return strings.ReplaceAll(tmpl, "{id}", id)
}

// LoadDocument reads a file into a Document.
func LoadDocument(path string, opts LoadOptions) (model.Document, error) {
	id := DocumentID(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Document{ID: id}, fmt.Errorf("reading %s: %w", path, err)
	}

	source := opts.Source
	if source == "" {
		source = model.SourceFromID(id)
	}

	baseURL := ExpandBaseURL(opts.BaseURL, id)
	if baseURL == "" {
		baseURL = model.DefaultBaseURL(source, id)
	}

	return model.Document{
		ID:      id,
		Source:  source,
		BaseURL: baseURL,
		Markup:  string(data),
		Format:  format.Resolve(path, data),
	}, nil
}
