// Package catalog holds the fixed, read-only table of Wraiths shown by the
// collection screens and used as battle participants.
package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("wraith not found")
	ErrInvalid  = errors.New("invalid wraith")
)

// Catalog is an ordered, immutable set of Wraiths. The zero value is an
// empty catalog.
type Catalog struct {
	list []Wraith
	byID map[string]int
}

// New validates ws and returns a catalog that owns a private copy of them.
func New(ws []Wraith) (*Catalog, error) {
	c := &Catalog{
		list: make([]Wraith, 0, len(ws)),
		byID: make(map[string]int, len(ws)),
	}
	for _, w := range ws {
		if err := validate(w); err != nil {
			return nil, err
		}
		if _, dup := c.byID[w.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalid, w.ID)
		}
		c.byID[w.ID] = len(c.list)
		c.list = append(c.list, w.clone())
	}
	return c, nil
}

func validate(w Wraith) error {
	switch {
	case w.ID == "":
		return fmt.Errorf("%w: empty id (name %q)", ErrInvalid, w.Name)
	case w.Name == "":
		return fmt.Errorf("%w: %s: empty name", ErrInvalid, w.ID)
	case !w.Element.Valid():
		return fmt.Errorf("%w: %s: unknown element %q", ErrInvalid, w.ID, w.Element)
	case w.Rarity < MinRarity || w.Rarity > MaxRarity:
		return fmt.Errorf("%w: %s: rarity %d outside %d..%d", ErrInvalid, w.ID, w.Rarity, MinRarity, MaxRarity)
	case len(w.Abilities) != AbilityCount:
		return fmt.Errorf("%w: %s: %d abilities, want %d", ErrInvalid, w.ID, len(w.Abilities), AbilityCount)
	case w.Stats.HP <= 0, w.Stats.Attack <= 0, w.Stats.Defense <= 0, w.Stats.Speed <= 0:
		return fmt.Errorf("%w: %s: stats must be positive, got %+v", ErrInvalid, w.ID, w.Stats)
	}
	for i, a := range w.Abilities {
		if a == "" {
			return fmt.Errorf("%w: %s: ability %d has no name", ErrInvalid, w.ID, i)
		}
	}
	return nil
}

// Len returns the number of Wraiths in the catalog.
func (c *Catalog) Len() int { return len(c.list) }

// List returns every Wraith in display order.
func (c *Catalog) List() []Wraith {
	out := make([]Wraith, len(c.list))
	for i, w := range c.list {
		out[i] = w.clone()
	}
	return out
}

// Featured returns the first n Wraiths, or all of them if there are fewer.
func (c *Catalog) Featured(n int) []Wraith {
	if n < 0 {
		n = 0
	}
	if n > len(c.list) {
		n = len(c.list)
	}
	out := make([]Wraith, n)
	for i := range out {
		out[i] = c.list[i].clone()
	}
	return out
}

// ByID looks up a Wraith by id.
func (c *Catalog) ByID(id string) (Wraith, error) {
	i, ok := c.byID[id]
	if !ok {
		return Wraith{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.list[i].clone(), nil
}

// GroupByElement buckets the Wraiths by element, keeping catalog order
// within each bucket. Elements with no Wraiths have no key.
func (c *Catalog) GroupByElement() map[Element][]Wraith {
	out := make(map[Element][]Wraith)
	for _, w := range c.list {
		out[w.Element] = append(out[w.Element], w.clone())
	}
	return out
}

// Elements returns the six elements in collection display order.
func Elements() []Element {
	return append([]Element(nil), elementOrder...)
}

// CountByRarity returns how many Wraiths have exactly the given rarity.
func (c *Catalog) CountByRarity(rarity int) int {
	n := 0
	for _, w := range c.list {
		if w.Rarity == rarity {
			n++
		}
	}
	return n
}
