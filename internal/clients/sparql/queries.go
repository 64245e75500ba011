package sparql

// The three fixed query payloads behind the atlas dashboards. Each row
// carries the country's ISO 3166-1 numeric code (the join key against
// the map topology), an optional English label and ISO alpha-2 code,
// and the domain-specific numeric fields. Values always arrive as
// strings in the SPARQL JSON envelope.

// SpeciesQuery counts endemic species per country, with sub-counts for
// the four tracked IUCN threat tiers. The total may include species in
// untracked tiers, so the sub-counts need not sum to it.
const SpeciesQuery = `
SELECT ?isoNum ?countryLabel ?isoCode
       (COUNT(?species) AS ?total)
       (SUM(IF(?status = wd:Q719675, 1, 0)) AS ?nt)
       (SUM(IF(?status = wd:Q278113, 1, 0)) AS ?vu)
       (SUM(IF(?status = wd:Q11394, 1, 0)) AS ?en)
       (SUM(IF(?status = wd:Q219127, 1, 0)) AS ?cr)
WHERE {
  ?species wdt:P183 ?country .
  ?country wdt:P299 ?isoNum .
  OPTIONAL { ?country wdt:P297 ?isoCode . }
  OPTIONAL { ?species wdt:P141 ?status . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}
GROUP BY ?isoNum ?countryLabel ?isoCode
`

// EconomyQuery fetches nominal GDP per country with its observation year
const EconomyQuery = `
SELECT ?isoNum ?countryLabel ?isoCode ?gdp (YEAR(?gdpDate) AS ?gdpYear)
WHERE {
  ?country wdt:P299 ?isoNum .
  OPTIONAL { ?country wdt:P297 ?isoCode . }
  ?country p:P2131 ?gdpStatement .
  ?gdpStatement ps:P2131 ?gdp .
  OPTIONAL { ?gdpStatement pq:P585 ?gdpDate . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}
`

// PopulationQuery fetches population per country with its observation year
const PopulationQuery = `
SELECT ?isoNum ?countryLabel ?isoCode ?population (YEAR(?popDate) AS ?popYear)
WHERE {
  ?country wdt:P299 ?isoNum .
  OPTIONAL { ?country wdt:P297 ?isoCode . }
  ?country p:P1082 ?popStatement .
  ?popStatement ps:P1082 ?population .
  OPTIONAL { ?popStatement pq:P585 ?popDate . }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
}
`
