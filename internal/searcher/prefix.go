package searcher

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// validPrefix allows only non-empty alphanumeric prefixes.
var validPrefix = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// SettingsStore persists prefix routes and the exclusion set. The router
// treats it as opaque; a nil store keeps everything in memory.
type SettingsStore interface {
	LoadRoutes() (routes map[string][]string, exclusions []string, err error)
	SaveRoutes(routes map[string][]string, exclusions []string) error
}

// RouteFolder is one (prefix, folder) pair, used when reporting dangling
// route targets.
type RouteFolder struct {
	Prefix string
	Folder string
}

// PrefixManager maps alphanumeric prefixes to sets of folder paths
// relative to the search root, and holds the folders excluded from
// unprefixed searches. Folder paths use forward slashes.
type PrefixManager struct {
	routes   map[string]map[string]bool
	excluded map[string]bool
	store    SettingsStore
	log      *slog.Logger
}

// NewPrefixManager builds a router, loading any persisted configuration.
func NewPrefixManager(store SettingsStore, log *slog.Logger) *PrefixManager {
	if log == nil {
		log = slog.Default()
	}
	m := &PrefixManager{
		routes:   make(map[string]map[string]bool),
		excluded: make(map[string]bool),
		store:    store,
		log:      log,
	}
	if store != nil {
		routes, exclusions, err := store.LoadRoutes()
		if err != nil {
			log.Warn("loading prefix routes failed", "error", err)
			return m
		}
		for prefix, folders := range routes {
			if !IsValidPrefix(prefix) {
				continue
			}
			set := make(map[string]bool, len(folders))
			for _, f := range folders {
				set[normalizeFolder(f)] = true
			}
			m.routes[prefix] = set
		}
		for _, f := range exclusions {
			m.excluded[normalizeFolder(f)] = true
		}
	}
	return m
}

// IsValidPrefix reports whether the token may be used as a prefix.
func IsValidPrefix(prefix string) bool {
	return validPrefix.MatchString(prefix)
}

func normalizeFolder(folder string) string {
	return strings.Trim(strings.ReplaceAll(folder, "\\", "/"), "/")
}

func (m *PrefixManager) save() {
	if m.store == nil {
		return
	}
	routes := make(map[string][]string, len(m.routes))
	for prefix := range m.routes {
		routes[prefix] = m.FoldersForPrefix(prefix)
	}
	if err := m.store.SaveRoutes(routes, m.Exclusions()); err != nil {
		m.log.Warn("saving prefix routes failed", "error", err)
	}
}

// AddPrefixFolder associates a folder with a prefix, creating the prefix
// if needed. Returns false for an invalid prefix.
func (m *PrefixManager) AddPrefixFolder(prefix, folder string) bool {
	if !IsValidPrefix(prefix) {
		return false
	}
	if m.routes[prefix] == nil {
		m.routes[prefix] = make(map[string]bool)
	}
	m.routes[prefix][normalizeFolder(folder)] = true
	m.save()
	return true
}

// RemovePrefixFolder removes a folder from a prefix; the prefix itself is
// dropped once its last folder goes. Returns false for an unknown prefix.
func (m *PrefixManager) RemovePrefixFolder(prefix, folder string) bool {
	folders, ok := m.routes[prefix]
	if !ok {
		return false
	}
	delete(folders, normalizeFolder(folder))
	if len(folders) == 0 {
		delete(m.routes, prefix)
	}
	m.save()
	return true
}

// FoldersForPrefix returns the folders routed by a prefix, sorted.
func (m *PrefixManager) FoldersForPrefix(prefix string) []string {
	folders := m.routes[prefix]
	if len(folders) == 0 {
		return nil
	}
	out := make([]string, 0, len(folders))
	for f := range folders {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// IsPrefixWord reports whether the word is a configured prefix.
func (m *PrefixManager) IsPrefixWord(word string) bool {
	_, ok := m.routes[word]
	return ok
}

// Prefixes returns all configured prefixes, sorted.
func (m *PrefixManager) Prefixes() []string {
	out := make([]string, 0, len(m.routes))
	for p := range m.routes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Exclusions returns the excluded folders, sorted.
func (m *PrefixManager) Exclusions() []string {
	out := make([]string, 0, len(m.excluded))
	for f := range m.excluded {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// IsFolderExcluded reports whether a folder is hidden from unprefixed
// searches: either it is in the exclusion set or some ancestor is.
func (m *PrefixManager) IsFolderExcluded(folder string) bool {
	folder = normalizeFolder(folder)
	if m.excluded[folder] {
		return true
	}
	for excluded := range m.excluded {
		if excluded == "" {
			continue
		}
		if strings.HasPrefix(folder, excluded+"/") {
			return true
		}
	}
	return false
}

// SetFolderExclusion adds or removes a folder from the exclusion set.
// Adding is a no-op when an ancestor is already excluded, and purges any
// already-excluded descendants since they become redundant.
func (m *PrefixManager) SetFolderExclusion(folder string, excluded bool) {
	folder = normalizeFolder(folder)
	if !excluded {
		delete(m.excluded, folder)
		m.save()
		return
	}
	for existing := range m.excluded {
		if existing == "" {
			continue
		}
		if folder == existing || strings.HasPrefix(folder, existing+"/") {
			return // ancestor already covers it
		}
	}
	m.excluded[folder] = true
	for existing := range m.excluded {
		if existing == folder || existing == "" {
			continue
		}
		if strings.HasPrefix(existing, folder+"/") {
			delete(m.excluded, existing)
		}
	}
	m.save()
}

// VerifyFolders checks every routed folder against a base path and
// returns the (prefix, folder) pairs whose target no longer exists. It is
// only run on demand, never implicitly.
func (m *PrefixManager) VerifyFolders(basePath string) []RouteFolder {
	var missing []RouteFolder
	for _, prefix := range m.Prefixes() {
		for _, folder := range m.FoldersForPrefix(prefix) {
			info, err := os.Stat(filepath.Join(basePath, filepath.FromSlash(folder)))
			if err != nil || !info.IsDir() {
				missing = append(missing, RouteFolder{Prefix: prefix, Folder: folder})
			}
		}
	}
	return missing
}

// ExportCSV writes the prefix table as CSV rows of
// "prefix,folder1|folder2".
func (m *PrefixManager) ExportCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"prefix", "folders"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, prefix := range m.Prefixes() {
		row := []string{prefix, strings.Join(m.FoldersForPrefix(prefix), "|")}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ImportCSV replaces the prefix table with the file's contents. Rows with
// invalid prefixes are skipped. The exclusion set is left untouched.
func (m *PrefixManager) ImportCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	routes := make(map[string]map[string]bool)
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "prefix" {
			continue // header
		}
		if len(row) < 2 || !IsValidPrefix(row[0]) {
			continue
		}
		set := make(map[string]bool)
		for _, folder := range strings.Split(row[1], "|") {
			if folder != "" {
				set[normalizeFolder(folder)] = true
			}
		}
		routes[row[0]] = set
	}
	m.routes = routes
	m.save()
	return nil
}
