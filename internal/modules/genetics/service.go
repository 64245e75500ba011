// Package genetics serves the genetic-distance lookup widget: a fixed
// symmetric matrix of pairwise FST distances between reference human
// populations. Pure lookup table; nothing is fetched or computed.
package genetics

import (
	"fmt"
	"sort"
)

// Population names in the matrix
const (
	San                  = "San"
	BantuSpeakers        = "Bantu speakers"
	Berber               = "Berber"
	Ethiopian            = "Ethiopian"
	European             = "European"
	Iranian              = "Iranian"
	Indian               = "Indian"
	Chinese              = "Chinese"
	Japanese             = "Japanese"
	SoutheastAsian       = "Southeast Asian"
	PacificIslander      = "Pacific Islander"
	AustralianAboriginal = "Australian Aboriginal"
	Amerindian           = "Amerindian"
)

// distances holds one triangle of the matrix; lookups probe both
// orientations. Values are scaled FST × 1000.
var distances = map[string]map[string]float64{
	San: {
		BantuSpeakers: 300, Berber: 470, Ethiopian: 420, European: 520,
		Iranian: 510, Indian: 540, Chinese: 590, Japanese: 600,
		SoutheastAsian: 580, PacificIslander: 640, AustralianAboriginal: 660,
		Amerindian: 620,
	},
	BantuSpeakers: {
		Berber: 280, Ethiopian: 180, European: 350, Iranian: 330,
		Indian: 360, Chinese: 420, Japanese: 430, SoutheastAsian: 400,
		PacificIslander: 460, AustralianAboriginal: 490, Amerindian: 450,
	},
	Berber: {
		Ethiopian: 150, European: 120, Iranian: 130, Indian: 180,
		Chinese: 290, Japanese: 300, SoutheastAsian: 270,
		PacificIslander: 350, AustralianAboriginal: 380, Amerindian: 310,
	},
	Ethiopian: {
		European: 170, Iranian: 160, Indian: 200, Chinese: 310,
		Japanese: 320, SoutheastAsian: 290, PacificIslander: 370,
		AustralianAboriginal: 400, Amerindian: 330,
	},
	European: {
		Iranian: 60, Indian: 170, Chinese: 210, Japanese: 220,
		SoutheastAsian: 190, PacificIslander: 270,
		AustralianAboriginal: 310, Amerindian: 230,
	},
	Iranian: {
		Indian: 90, Chinese: 200, Japanese: 210, SoutheastAsian: 180,
		PacificIslander: 260, AustralianAboriginal: 300, Amerindian: 220,
	},
	Indian: {
		Chinese: 170, Japanese: 180, SoutheastAsian: 150,
		PacificIslander: 230, AustralianAboriginal: 280, Amerindian: 200,
	},
	Chinese: {
		Japanese: 50, SoutheastAsian: 80, PacificIslander: 160,
		AustralianAboriginal: 250, Amerindian: 140,
	},
	Japanese: {
		SoutheastAsian: 90, PacificIslander: 170,
		AustralianAboriginal: 260, Amerindian: 150,
	},
	SoutheastAsian: {
		PacificIslander: 120, AustralianAboriginal: 220, Amerindian: 170,
	},
	PacificIslander: {
		AustralianAboriginal: 190, Amerindian: 240,
	},
	AustralianAboriginal: {
		Amerindian: 290,
	},
}

// Populations lists the population names in the matrix, sorted
func Populations() []string {
	seen := make(map[string]struct{})
	for a, row := range distances {
		seen[a] = struct{}{}
		for b := range row {
			seen[b] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Distance returns the pairwise distance between two populations.
// Symmetric, zero on the diagonal, and an error for unknown names.
func Distance(a, b string) (float64, error) {
	if !known(a) {
		return 0, fmt.Errorf("unknown population: %q", a)
	}
	if !known(b) {
		return 0, fmt.Errorf("unknown population: %q", b)
	}
	if a == b {
		return 0, nil
	}

	if row, ok := distances[a]; ok {
		if d, ok := row[b]; ok {
			return d, nil
		}
	}
	if row, ok := distances[b]; ok {
		if d, ok := row[a]; ok {
			return d, nil
		}
	}
	// Both names are known, so one triangle must hold the pair
	return 0, fmt.Errorf("no distance recorded between %q and %q", a, b)
}

func known(name string) bool {
	if _, ok := distances[name]; ok {
		return true
	}
	for _, row := range distances {
		if _, ok := row[name]; ok {
			return true
		}
	}
	return false
}
