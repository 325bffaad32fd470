package api

import (
	"net/http"

	"github.com/dekarrin/tqinterp/internal/glossary"
	"github.com/dekarrin/tqinterp/internal/node"
	"github.com/dekarrin/tqinterp/server/result"
)

// HTTPGetGlossary returns a HandlerFunc that lists every definition in the
// server's glossary in the order it was registered. No authentication is
// required.
func (api API) HTTPGetGlossary() http.HandlerFunc {
	return api.Endpoint(api.epGetGlossary)
}

func (api API) epGetGlossary(req *http.Request) result.Result {
	g := api.Backend.Glossary()

	defs := g.Definitions()
	resp := make([]DefinitionModel, len(defs))
	for i, def := range defs {
		resp[i] = DefinitionModel{
			ID:       def.ID(),
			Category: def.Category().String(),
			Words:    g.WordsFor(def.ID()),
		}

		if verb, ok := def.(*glossary.VerbDef); ok {
			for _, u := range verb.Usages() {
				resp[i].Usages = append(resp[i].Usages, usageModel(u))
			}
		}
	}

	return result.OK(resp, "got glossary (%d definitions)", len(resp))
}

func usageModel(u node.Usage) UsageModel {
	m := UsageModel{Structure: u.String()}
	for _, f := range []node.UsageFlags{node.SwapArgs, node.MakeSingular} {
		if u.Flags.Has(f) {
			m.Flags = append(m.Flags, f.String())
		}
	}
	return m
}
