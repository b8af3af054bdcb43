package dex

// IndexEntry maps a canonical name to its ordinal position in the upstream
// listing at fetch time. Immutable once fetched.
type IndexEntry struct {
	Name      string `json:"name"`
	Number    int    `json:"number"`
	SourceRef string `json:"sourceRef"`
}

// SummaryItem is the lightweight per-creature record used in listings.
type SummaryItem struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Number int      `json:"number"`
	Image  string   `json:"image"`
	Types  []string `json:"types"`
}

type Images struct {
	Front      string `json:"front"`
	Back       string `json:"back"`
	FrontShiny string `json:"frontShiny"`
	BackShiny  string `json:"backShiny"`
	Artwork    string `json:"artwork"`
}

type Ability struct {
	Name     string `json:"name"`
	IsHidden bool   `json:"isHidden"`
}

type Move struct {
	Name        string `json:"name"`
	LearnMethod string `json:"learnMethod"`
}

type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Form struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}

// DetailItem is the enriched record for a single-entity request. The last
// five fields degrade to empty/"Unknown" sentinels when the secondary
// species record is unavailable.
type DetailItem struct {
	SummaryItem
	Images      Images    `json:"images"`
	Height      float64   `json:"height"` // metres
	Weight      float64   `json:"weight"` // kilograms
	Abilities   []Ability `json:"abilities"`
	Moves       []Move    `json:"moves"`
	Stats       []Stat    `json:"stats"`
	Forms       []Form    `json:"forms"`
	Description string    `json:"description"`
	Genus       string    `json:"genus"`
	Habitat     string    `json:"habitat"`
	Generation  string    `json:"generation"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasNext bool `json:"hasNext"`
	HasPrev bool `json:"hasPrev"`
}

// PageResult is the response envelope for listing operations. Total counts
// matches after filtering, before pagination.
type PageResult struct {
	Results    []SummaryItem `json:"results"`
	Pagination Pagination    `json:"pagination"`
}
