package catalogue

// CityAlias pairs a canonical city key with the normalized phrases that
// identify it inside free text or a session display name. The key itself is
// always an implicit alias.
type CityAlias struct {
	Key     string
	Aliases []string
}

// Cities is the fixed city-alias table in scan order. Keys and aliases are
// normalized (lower-case, no punctuation); scanning stops on the first hit,
// so more specific phrases come before the catch-all city name.
var Cities = []CityAlias{
	{"stratford", []string{"stratford", "east london"}},
	{"romford", []string{"romford"}},
	{"watford", []string{"watford"}},
	{"london", []string{"london"}},
	{"birmingham", []string{"birmingham"}},
	{"manchester", []string{"manchester", "salford"}},
	{"liverpool", []string{"liverpool"}},
	{"leeds", []string{"leeds"}},
	{"sheffield", []string{"sheffield"}},
	{"nottingham", []string{"nottingham"}},
	{"bristol", []string{"bristol"}},
	{"cardiff", []string{"cardiff"}},
	{"newcastle", []string{"newcastle", "newcastle upon tyne"}},
	{"glasgow", []string{"glasgow"}},
	{"edinburgh", []string{"edinburgh"}},
}

// CityAliasesFor returns the configured alias phrases for a canonical city
// key, or nil when the city is not in the table.
func CityAliasesFor(key string) []string {
	for _, c := range Cities {
		if c.Key == key {
			return c.Aliases
		}
	}
	return nil
}
