package pokeapi

import "context"

// NamedResource is the upstream's {name, url} reference pair.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// resourcePage is the shape of the upstream listing endpoint.
type resourcePage struct {
	Count   int             `json:"count"`
	Results []NamedResource `json:"results"`
}

// Pokemon is the upstream detail record for one creature.
type Pokemon struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Height    int              `json:"height"` // decimetres
	Weight    int              `json:"weight"` // hectograms
	Sprites   Sprites          `json:"sprites"`
	Types     []PokemonType    `json:"types"`
	Abilities []PokemonAbility `json:"abilities"`
	Moves     []PokemonMove    `json:"moves"`
	Stats     []PokemonStat    `json:"stats"`
	Species   NamedResource    `json:"species"`
}

type Sprites struct {
	FrontDefault string `json:"front_default"`
	BackDefault  string `json:"back_default"`
	FrontShiny   string `json:"front_shiny"`
	BackShiny    string `json:"back_shiny"`
	Other        struct {
		OfficialArtwork struct {
			FrontDefault string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokemonAbility struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
}

type PokemonMove struct {
	Move                NamedResource        `json:"move"`
	VersionGroupDetails []VersionGroupDetail `json:"version_group_details"`
}

type VersionGroupDetail struct {
	MoveLearnMethod NamedResource `json:"move_learn_method"`
}

type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

// Species is the upstream secondary record carrying descriptions, genera
// and form metadata. Alternate forms may have no species record of their
// own; the Pokemon record's Species URL points at the shared one.
type Species struct {
	FlavorTextEntries []FlavorText   `json:"flavor_text_entries"`
	Genera            []Genus        `json:"genera"`
	Habitat           *NamedResource `json:"habitat"`
	Generation        NamedResource  `json:"generation"`
	Varieties         []Variety      `json:"varieties"`
}

type FlavorText struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
}

type Genus struct {
	Genus    string        `json:"genus"`
	Language NamedResource `json:"language"`
}

type Variety struct {
	IsDefault bool          `json:"is_default"`
	Pokemon   NamedResource `json:"pokemon"`
}

// Client is the upstream catalog client used by the aggregation service.
type Client interface {
	ListPokemon(ctx context.Context, limit int) ([]NamedResource, error)
	GetPokemon(ctx context.Context, nameOrID string) (*Pokemon, error)
	GetSpecies(ctx context.Context, id int) (*Species, error)
	GetSpeciesByURL(ctx context.Context, url string) (*Species, error)
}
