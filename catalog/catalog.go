package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Catalog is the resolver's read-only content lookup: pure data maps
// keyed by string id. A Catalog is initialized once at startup and is
// safe to share process-wide once loaded.
type Catalog struct {
	Abilities map[string]*Ability
	Classes   map[string]*Class
	Items     map[string]*Item
	Pets      map[string]*PetTemplate
	Effects   map[string]*EffectTemplate

	Defaults Defaults
	Caps     Caps
}

type abilitiesFile struct {
	Abilities []Ability `yaml:"abilities"`
}

type classesFile struct {
	Classes []Class `yaml:"classes"`
}

type itemsFile struct {
	Items []Item `yaml:"items"`
}

type petsFile struct {
	Pets []PetTemplate `yaml:"pets"`
}

type effectsFile struct {
	Effects []EffectTemplate `yaml:"effects"`
}

type balanceFile struct {
	Defaults Defaults `yaml:"defaults"`
	Caps     Caps     `yaml:"caps"`
}

// Load reads abilities.yaml, classes.yaml, items.yaml, pets.yaml,
// effects.yaml, and balance.yaml from root and builds a Catalog. Each
// file is optional; a missing file yields an empty set for that
// content kind rather than an error, so a test fixture can supply only
// the records it needs.
func Load(root fs.FS) (*Catalog, error) {
	c := &Catalog{
		Abilities: make(map[string]*Ability),
		Classes:   make(map[string]*Class),
		Items:     make(map[string]*Item),
		Pets:      make(map[string]*PetTemplate),
		Effects:   make(map[string]*EffectTemplate),
	}

	var af abilitiesFile
	if err := loadYAML(root, "abilities.yaml", &af); err != nil {
		return nil, err
	}
	for i := range af.Abilities {
		a := af.Abilities[i]
		if a.ID == "" {
			return nil, fmt.Errorf("catalog: ability missing id at index %d", i)
		}
		c.Abilities[a.ID] = &a
	}

	var cf classesFile
	if err := loadYAML(root, "classes.yaml", &cf); err != nil {
		return nil, err
	}
	for i := range cf.Classes {
		cl := cf.Classes[i]
		if cl.ID == "" {
			return nil, fmt.Errorf("catalog: class missing id at index %d", i)
		}
		c.Classes[cl.ID] = &cl
	}

	var itf itemsFile
	if err := loadYAML(root, "items.yaml", &itf); err != nil {
		return nil, err
	}
	for i := range itf.Items {
		it := itf.Items[i]
		if it.ID == "" {
			return nil, fmt.Errorf("catalog: item missing id at index %d", i)
		}
		c.Items[it.ID] = &it
	}

	var pf petsFile
	if err := loadYAML(root, "pets.yaml", &pf); err != nil {
		return nil, err
	}
	for i := range pf.Pets {
		p := pf.Pets[i]
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: pet template missing id at index %d", i)
		}
		c.Pets[p.ID] = &p
	}

	var ef effectsFile
	if err := loadYAML(root, "effects.yaml", &ef); err != nil {
		return nil, err
	}
	for i := range ef.Effects {
		e := ef.Effects[i]
		if e.ID == "" {
			return nil, fmt.Errorf("catalog: effect template missing id at index %d", i)
		}
		c.Effects[e.ID] = &e
	}

	var bf balanceFile
	if err := loadYAML(root, "balance.yaml", &bf); err != nil {
		return nil, err
	}
	c.Defaults = bf.Defaults
	c.Caps = bf.Caps

	return c, nil
}

// loadYAML decodes path from root into dst, leaving dst at its zero
// value if the file does not exist.
func loadYAML(root fs.FS, path string, dst any) error {
	data, err := fs.ReadFile(root, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("catalog: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("catalog: parsing %s: %w", path, err)
	}
	return nil
}

//go:embed fixtures/*.yaml
var defaultFixtures embed.FS

// Default returns the resolver's built-in content pack: enough
// classes, abilities, items, pets, and effect templates to run full
// duels end to end.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(defaultFixtures, "fixtures")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}
