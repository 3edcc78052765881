package importer

import (
	"strings"

	"github.com/mattcc18/financy-ledger/internal/account"
)

// counterpartyMarkers are checked in order; the first one present in the
// description decides where the counterparty name starts.
var counterpartyMarkers = []string{"to ", "from ", "transfer to ", "transfer from "}

// findCounterparty scans a transfer description for the other account's name.
// The text after the matched marker is cut at the first comma and capped at
// three words, then fuzzy-matched against every account name: any candidate
// word longer than two characters appearing in the name, or substring
// containment in either direction, counts as a hit. False positives are an
// accepted cost, mitigated by confidence scoring and the review bucket.
func findCounterparty(description string, accounts []account.Account) *int64 {
	if description == "" || len(accounts) == 0 {
		return nil
	}

	desc := strings.ToLower(description)

	for _, marker := range counterpartyMarkers {
		_, after, found := strings.Cut(desc, marker)
		if !found {
			continue
		}

		candidate, _, _ := strings.Cut(strings.TrimSpace(after), ",")

		words := strings.Fields(candidate)
		if len(words) == 0 {
			continue
		}

		if len(words) > 3 {
			words = words[:3]
		}

		candidate = strings.Join(words, " ")

		var longWords []string

		for _, w := range words {
			if len(w) > 2 {
				longWords = append(longWords, w)
			}
		}

		for _, a := range accounts {
			name := strings.ToLower(a.Name)

			for _, w := range longWords {
				if strings.Contains(name, w) {
					id := a.ID
					return &id
				}
			}

			if strings.Contains(name, candidate) || strings.Contains(candidate, name) {
				id := a.ID
				return &id
			}
		}
	}

	return nil
}
