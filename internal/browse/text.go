package browse

import (
	"fmt"
	"strings"

	"github.com/jackzampolin/pokedex/internal/pokemon"
)

// Text renders the page for the terminal.
func (v ListView) Text() string {
	var b strings.Builder
	if v.Notice != nil {
		fmt.Fprintf(&b, "%s %s\n", v.Notice.Icon(), v.Notice.Message)
	}
	b.WriteString(pokemon.ListResult{Items: v.Items, TotalCount: v.TotalCount}.Text())
	fmt.Fprintf(&b, ", page %d/%d (size %d)", v.PageNumber(), v.TotalPages, v.Query.Size)
	return b.String()
}

// Text renders the record for the terminal.
func (v DetailView) Text() string {
	if v.Record == nil {
		if n := v.Notice(); n != nil {
			return fmt.Sprintf("%s %s", n.Icon(), n.Message)
		}
		return fmt.Sprintf("no record for %q", v.ID)
	}
	return pokemon.DetailResult{Record: *v.Record, EvolutionStages: v.Stages}.Text()
}
