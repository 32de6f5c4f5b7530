package catalog

// Element is the categorical affinity of a Wraith. It has no effect on
// damage.
type Element string

const (
	Shadow Element = "shadow"
	Flame  Element = "flame"
	Void   Element = "void"
	Storm  Element = "storm"
	Venom  Element = "venom"
	Frost  Element = "frost"
)

// elementOrder is the fixed display order of the collection screen.
var elementOrder = []Element{Shadow, Flame, Void, Storm, Venom, Frost}

// Valid reports whether e is one of the six known elements.
func (e Element) Valid() bool {
	for _, v := range elementOrder {
		if v == e {
			return true
		}
	}
	return false
}

const (
	MinRarity = 1
	MaxRarity = 5

	// Legendary is the rarity counted by the collection screen.
	Legendary = MaxRarity

	// AbilityCount is the number of abilities every Wraith carries.
	AbilityCount = 3
)

// Stats are the fixed combat attributes of a Wraith.
type Stats struct {
	HP      int `yaml:"hp"`
	Attack  int `yaml:"attack"`
	Defense int `yaml:"defense"`
	Speed   int `yaml:"speed"`
}

// Wraith is one catalog entry. Abilities are labels only.
type Wraith struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Element     Element   `yaml:"element"`
	Rarity      int       `yaml:"rarity"`
	Emoji       string    `yaml:"emoji"`
	Palette     [2]string `yaml:"palette"` // hex gradient stops, top then bottom
	Description string    `yaml:"description"`
	Abilities   []string  `yaml:"abilities"`
	Stats       Stats     `yaml:"stats"`
}

// clone returns a copy that shares no memory with w.
func (w Wraith) clone() Wraith {
	w.Abilities = append([]string(nil), w.Abilities...)
	return w
}

// file is the on-disk shape of a catalog YAML document.
type file struct {
	Wraiths []Wraith `yaml:"wraiths"`
}
