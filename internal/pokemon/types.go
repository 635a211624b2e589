// Package pokemon holds the backend's record shapes and a typed service over
// the gateway for the collection endpoints.
package pokemon

import (
	"fmt"
	"strings"
)

// Pokemon is the basic record used in lists and evolution stages.
type Pokemon struct {
	ID        int      `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Image     string   `json:"imageList" yaml:"image"`
	Types     []string `json:"typeList" yaml:"types"`
	Abilities []string `json:"abilitiesList" yaml:"abilities"`
	Weight    float64  `json:"weight" yaml:"weight"`
}

// AbilityLabels returns abilities with embedded newlines flattened to spaces.
func (p Pokemon) AbilityLabels() []string {
	out := make([]string, len(p.Abilities))
	for i, a := range p.Abilities {
		out[i] = strings.Join(strings.Fields(strings.ReplaceAll(a, "\n", " ")), " ")
	}
	return out
}

// Species carries the species-level fields of a detail record.
type Species struct {
	EvolutionChainURL string `json:"evolutionChainUrl" yaml:"evolution_chain_url"`
	FlavorText        string `json:"flavorText" yaml:"flavor_text"`
}

// PokemonDetail is the full record shown on the detail page.
type PokemonDetail struct {
	Pokemon     `yaml:",inline"`
	Height      float64 `json:"height" yaml:"height"`
	DetailImage string  `json:"imageDetail" yaml:"detail_image"`
	Species     Species `json:"species" yaml:"species"`
}

// DisplayImage prefers the detail artwork and falls back to the list image.
func (d PokemonDetail) DisplayImage() string {
	if d.DetailImage != "" {
		return d.DetailImage
	}
	return d.Image
}

// ListResult is one page of the collection.
type ListResult struct {
	Items      []Pokemon `json:"list" yaml:"items"`
	TotalCount int       `json:"recordCount" yaml:"total_count"`
}

// Stage is one rank in an evolution chain; it holds one or more alternative forms.
type Stage []Pokemon

// DetailResult is a record plus its evolution chain in chain order.
type DetailResult struct {
	Record          PokemonDetail `json:"data" yaml:"record"`
	EvolutionStages []Stage       `json:"evolutionList" yaml:"evolution_stages"`
}

// Text renders a page for the terminal.
func (r ListResult) Text() string {
	var b strings.Builder
	for _, p := range r.Items {
		fmt.Fprintf(&b, "#%-4d %-14s %-18s %g kg\n", p.ID, p.Name, strings.Join(p.Types, ","), p.Weight)
	}
	fmt.Fprintf(&b, "%d records", r.TotalCount)
	return b.String()
}

// Text renders a detail record and its chain for the terminal.
func (r DetailResult) Text() string {
	var b strings.Builder
	d := r.Record
	fmt.Fprintf(&b, "#%d %s\n", d.ID, d.Name)
	fmt.Fprintf(&b, "  Height:    %g m\n", d.Height)
	fmt.Fprintf(&b, "  Weight:    %g kg\n", d.Weight)
	fmt.Fprintf(&b, "  Types:     %s\n", strings.Join(d.Types, ", "))
	fmt.Fprintf(&b, "  Abilities: %s\n", strings.Join(d.AbilityLabels(), ", "))
	if d.Species.FlavorText != "" {
		fmt.Fprintf(&b, "  %s\n", strings.Join(strings.Fields(d.Species.FlavorText), " "))
	}
	for i, stage := range r.EvolutionStages {
		names := make([]string, len(stage))
		for j, p := range stage {
			names[j] = p.Name
		}
		fmt.Fprintf(&b, "  Stage %d:   %s\n", i+1, strings.Join(names, " / "))
	}
	return strings.TrimRight(b.String(), "\n")
}
