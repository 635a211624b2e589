package pokemon

import (
	"strings"
	"testing"
)

func TestPokemon_AbilityLabels(t *testing.T) {
	p := Pokemon{Abilities: []string{"run\naway", "  keen   eye ", "static"}}
	got := p.AbilityLabels()
	want := []string{"run away", "keen eye", "static"}
	if len(got) != len(want) {
		t.Fatalf("AbilityLabels() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, got[i], want[i])
		}
	}
	if p.Abilities[0] != "run\naway" {
		t.Error("AbilityLabels must not modify the record")
	}
}

func TestPokemonDetail_DisplayImage(t *testing.T) {
	d := PokemonDetail{Pokemon: Pokemon{Image: "list.png"}}
	if got := d.DisplayImage(); got != "list.png" {
		t.Errorf("DisplayImage() = %q, want list fallback", got)
	}
	d.DetailImage = "detail.png"
	if got := d.DisplayImage(); got != "detail.png" {
		t.Errorf("DisplayImage() = %q, want detail.png", got)
	}
}

func TestDetailResult_Text(t *testing.T) {
	r := DetailResult{
		Record: PokemonDetail{
			Pokemon: Pokemon{ID: 133, Name: "eevee", Types: []string{"normal"}},
			Species: Species{FlavorText: "Its genes\nare unstable."},
		},
		EvolutionStages: []Stage{
			{{ID: 133, Name: "eevee"}},
			{{ID: 134, Name: "vaporeon"}, {ID: 135, Name: "jolteon"}},
		},
	}
	text := r.Text()
	for _, want := range []string{"#133 eevee", "Its genes are unstable.", "Stage 2:   vaporeon / jolteon"} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q:\n%s", want, text)
		}
	}
}
