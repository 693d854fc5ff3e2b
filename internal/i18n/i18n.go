// internal/i18n/i18n.go
//
// Localized UI strings for the game host.
//
// Catalogs are embedded JSON files named after their BCP 47 tag
// (messages/en.json, messages/fr.json, ...). English is mandatory and is the
// fallback both for unmatched languages and for keys a catalog is missing.

package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/language"
)

//go:embed messages/*.json
var files embed.FS

// Catalog is one language's string table.
type Catalog struct {
	tag      language.Tag
	strings  map[string]string
	fallback *Catalog
}

// Tag returns the catalog's language.
func (c *Catalog) Tag() language.Tag { return c.tag }

// Lookup returns the string for key, falling back to English and then to
// the key itself.
func (c *Catalog) Lookup(key string) string {
	if s, ok := c.strings[key]; ok {
		return s
	}
	if c.fallback != nil {
		return c.fallback.Lookup(key)
	}
	return key
}

// Bundle holds every embedded catalog and a matcher over their tags.
type Bundle struct {
	tags     []language.Tag // tags[0] is English
	catalogs []*Catalog
	matcher  language.Matcher
}

// Load parses the embedded catalogs.
func Load() (*Bundle, error) {
	return load(files)
}

// MustLoad is Load for package-level initialization.
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

func load(fsys fs.FS) (*Bundle, error) {
	names, err := fs.Glob(fsys, "messages/*.json")
	if err != nil {
		return nil, err
	}

	var en *Catalog
	var others []*Catalog
	for _, name := range names {
		stem := strings.TrimSuffix(path.Base(name), ".json")
		tag, err := language.Parse(stem)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", name, err)
		}
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		c := &Catalog{tag: tag, strings: map[string]string{}}
		if err := json.Unmarshal(raw, &c.strings); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if tag == language.English {
			en = c
			continue
		}
		others = append(others, c)
	}
	if en == nil {
		return nil, fmt.Errorf("missing messages/en.json")
	}

	b := &Bundle{
		tags:     []language.Tag{en.tag},
		catalogs: []*Catalog{en},
	}
	for _, c := range others {
		c.fallback = en
		b.tags = append(b.tags, c.tag)
		b.catalogs = append(b.catalogs, c)
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Default returns the English catalog.
func (b *Bundle) Default() *Catalog { return b.catalogs[0] }

// Languages lists the available catalog tags, English first.
func (b *Bundle) Languages() []language.Tag {
	return append([]language.Tag(nil), b.tags...)
}

// Negotiate picks the best catalog for an Accept-Language header value.
// Malformed or empty headers get English.
func (b *Bundle) Negotiate(acceptLanguage string) *Catalog {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.Default()
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.Default()
	}
	return b.catalogs[idx]
}
