package spelling

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dictionary maps canonical terms to their known misspellings. Immutable at
// runtime; loaded once per process.
type Dictionary map[string][]string

// DefaultDictionary returns the built-in Norwegian/English real-estate and
// document vocabulary.
func DefaultDictionary() Dictionary {
	return Dictionary{
		"bolig":        {"bolih", "boig", "bollig", "boliig"},
		"eiendom":      {"eindom", "eiendm", "eiedom"},
		"leilighet":    {"lelighet", "leiglighet", "leilghet"},
		"kontrakt":     {"kontrak", "kontrakkt", "konrakt"},
		"takst":        {"taks", "tagst"},
		"visning":      {"vising", "visnig"},
		"tilbud":       {"tibud", "tilbudd"},
		"salgsoppgave": {"salgsopgave", "salgsoppgav"},
		"prospekt":     {"prospket", "propekt"},
		"tinglysing":   {"tinglysning", "tingysing"},
		"megler":       {"melger", "meglr"},
		"faktura":      {"fakutra", "faktua"},
		"budsjett":     {"budsjet", "busjett"},
		"rapport":      {"raport", "rappport"},
		"dokument":     {"dokumnet", "dokment"},
		"avtale":       {"avtal", "atvale"},
		"contract":     {"contrat", "contarct"},
		"invoice":      {"invocie", "inovice"},
		"report":       {"repot", "reprot"},
		"meeting":      {"meetng", "meting"},
		"presentation": {"presentaton", "presentaion"},
		"budget":       {"buget", "budgt"},
	}
}

// LoadDictionaryFile reads canonical-term -> misspellings overrides from a
// YAML file.
func LoadDictionaryFile(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary file: %w", err)
	}
	var dict Dictionary
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary file: %w", err)
	}
	return dict, nil
}

// Merge overlays other onto d, replacing the misspelling list of any term
// present in both.
func (d Dictionary) Merge(other Dictionary) Dictionary {
	merged := make(Dictionary, len(d)+len(other))
	for term, typos := range d {
		merged[term] = typos
	}
	for term, typos := range other {
		merged[term] = typos
	}
	return merged
}
