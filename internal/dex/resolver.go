package dex

import (
	"strings"

	"pokedex-service/internal/pokeapi"
)

// Sentinels used when no species record is obtainable. A missing secondary
// record degrades the response, it never aborts it.
const (
	NoDescription = "No description available"
	Unknown       = "Unknown"
)

// maxMoves caps the move list at the first entries in upstream order.
const maxMoves = 20

// speciesResult is the outcome of the two-step species resolution: direct
// lookup by id first, then the redirect reference embedded in the primary
// record. Not found by either path leaves ok false.
type speciesResult struct {
	ok     bool
	record *pokeapi.Species
}

func summaryFromPokemon(p *pokeapi.Pokemon) SummaryItem {
	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, t.Type.Name)
	}

	image := p.Sprites.Other.OfficialArtwork.FrontDefault
	if image == "" {
		image = p.Sprites.FrontDefault
	}

	return SummaryItem{
		ID:     p.ID,
		Name:   p.Name,
		Number: p.ID,
		Image:  image,
		Types:  types,
	}
}

func detailFromPokemon(p *pokeapi.Pokemon, species speciesResult) *DetailItem {
	d := &DetailItem{
		SummaryItem: summaryFromPokemon(p),
		Images: Images{
			Front:      p.Sprites.FrontDefault,
			Back:       p.Sprites.BackDefault,
			FrontShiny: p.Sprites.FrontShiny,
			BackShiny:  p.Sprites.BackShiny,
			Artwork:    p.Sprites.Other.OfficialArtwork.FrontDefault,
		},
		Height:      float64(p.Height) / 10, // decimetres -> metres
		Weight:      float64(p.Weight) / 10, // hectograms -> kilograms
		Abilities:   make([]Ability, 0, len(p.Abilities)),
		Moves:       make([]Move, 0, min(len(p.Moves), maxMoves)),
		Stats:       make([]Stat, 0, len(p.Stats)),
		Forms:       []Form{},
		Description: NoDescription,
		Genus:       Unknown,
		Habitat:     Unknown,
		Generation:  Unknown,
	}

	for _, a := range p.Abilities {
		d.Abilities = append(d.Abilities, Ability{
			Name:     a.Ability.Name,
			IsHidden: a.IsHidden,
		})
	}

	// First 20 moves in upstream order, not sorted or deduplicated; the
	// learn method comes from the first version-group entry only.
	for _, m := range p.Moves {
		if len(d.Moves) == maxMoves {
			break
		}
		learnMethod := ""
		if len(m.VersionGroupDetails) > 0 {
			learnMethod = m.VersionGroupDetails[0].MoveLearnMethod.Name
		}
		d.Moves = append(d.Moves, Move{
			Name:        m.Move.Name,
			LearnMethod: learnMethod,
		})
	}

	for _, st := range p.Stats {
		d.Stats = append(d.Stats, Stat{
			Name:  st.Stat.Name,
			Value: st.BaseStat,
		})
	}

	if species.ok {
		applySpecies(d, species.record)
	}

	return d
}

func applySpecies(d *DetailItem, sp *pokeapi.Species) {
	for _, v := range sp.Varieties {
		d.Forms = append(d.Forms, Form{
			Name:      v.Pokemon.Name,
			IsDefault: v.IsDefault,
		})
	}

	for _, entry := range sp.FlavorTextEntries {
		if entry.Language.Name == "en" {
			d.Description = cleanFlavorText(entry.FlavorText)
			break
		}
	}

	for _, g := range sp.Genera {
		if g.Language.Name == "en" {
			d.Genus = g.Genus
			break
		}
	}

	if sp.Habitat != nil && sp.Habitat.Name != "" {
		d.Habitat = sp.Habitat.Name
	}
	if sp.Generation.Name != "" {
		d.Generation = sp.Generation.Name
	}
}

// cleanFlavorText collapses the control characters the upstream embeds in
// flavor text into spaces.
func cleanFlavorText(s string) string {
	s = strings.NewReplacer("\n", " ", "\f", " ", "\r", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
