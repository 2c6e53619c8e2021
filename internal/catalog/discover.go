package catalog

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultKeywords narrows the walk to filenames that can hold components.
var DefaultKeywords = []string{"shield", "power", "cooler", "quantum", "shld", "powr", "cool", "qdrv"}

const recordExt = ".xml"

// Discover walks dir, collects record files (".xml", any case) whose base
// name contains one of keywords (case-insensitive), and returns them sorted
// lexicographically. An empty keyword list keeps every record.
func Discover(dir string, keywords []string) ([]string, error) {
	lower := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lower = append(lower, k)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), recordExt) {
			return nil
		}
		if matchesKeyword(strings.ToLower(d.Name()), lower) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func matchesKeyword(name string, keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, k := range keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}
