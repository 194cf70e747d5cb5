package story

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Catalog is the read-only registry of stories available to players.
// It is loaded once at startup and safely shared across all sessions.
// Story IDs are positions in the catalog, fixed by sorted filename order.
type Catalog struct {
	stories []Story
}

// NewCatalog builds a catalog from stories already in memory. Used by tests
// and anywhere the filesystem is not available.
func NewCatalog(stories ...Story) *Catalog {
	return &Catalog{stories: stories}
}

// LoadCatalog reads every *.json story definition from dir. Files are
// loaded in sorted filename order so catalog indexes are deterministic
// across restarts.
func LoadCatalog(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read stories directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no story definitions found in %s", dir)
	}

	stories := make([]Story, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read story file %s: %w", name, err)
		}

		var s Story
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal story %s: %w", name, err)
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid story %s: %w", name, err)
		}
		stories = append(stories, s)
	}

	return &Catalog{stories: stories}, nil
}

// Len returns the number of stories in the catalog.
func (c *Catalog) Len() int {
	return len(c.stories)
}

// Get returns the story at the given catalog index.
func (c *Catalog) Get(id int) (*Story, error) {
	if id < 0 || id >= len(c.stories) {
		return nil, fmt.Errorf("story id %d out of range (0-%d)", id, len(c.stories)-1)
	}
	return &c.stories[id], nil
}

// Titles returns all story titles in catalog order.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.stories))
	for i := range c.stories {
		titles[i] = c.stories[i].Title
	}
	return titles
}
