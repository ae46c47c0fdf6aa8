package genius

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Letters and digits stay, including accented ones; French titles lose
// their letters under an ASCII-only class.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// cacheKey normalizes a (title, artist) pair so re-scraped weeks hit the
// cache regardless of punctuation or casing differences.
func cacheKey(title, artist string) string {
	t := strings.TrimSpace(nonWord.ReplaceAllString(strings.ToLower(title), ""))
	a := strings.TrimSpace(nonWord.ReplaceAllString(strings.ToLower(artist), ""))
	return t + "|" + a
}

// Cache is a JSON file of song lookups, including negative ones, so a song
// Genius doesn't know is asked about only once. Entries are flushed to disk
// every few mutations and on Save.
type Cache struct {
	path    string
	entries map[string]SongData
	unsaved int
}

const saveEvery = 10

func OpenCache(path string) (*Cache, error) {
	c := &Cache{path: path, entries: make(map[string]SongData)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("parsing cache %s: %w", path, err)
	}
	return c, nil
}

func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) Get(title, artist string) (SongData, bool) {
	d, ok := c.entries[cacheKey(title, artist)]
	return d, ok
}

func (c *Cache) Set(title, artist string, d SongData) error {
	c.entries[cacheKey(title, artist)] = d
	c.unsaved++
	if c.unsaved >= saveEvery {
		return c.Save()
	}
	return nil
}

func (c *Cache) Save() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("writing cache %s: %w", c.path, err)
	}
	c.unsaved = 0
	return nil
}
