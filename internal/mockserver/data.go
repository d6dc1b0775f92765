package mockserver

import (
	"fmt"
	"time"

	"github.com/rshade/orglist/internal/collection"
)

// orgNames seeds the generated organization names.
//
//nolint:gochecknoglobals // Fixed seed data.
var orgNames = []string{
	"Acme", "Blue Harbor", "Cedar Labs", "Default", "Echo Systems", "Fjord",
	"Granite", "Helix", "Ion Works", "Juniper", "Kestrel", "Lumen",
	"Meridian", "Northwind", "Onyx", "Prairie", "Quartz", "Redwood",
	"Summit", "Tidewater", "Umber", "Vertex", "Willow", "Xenon",
}

// GenerateOrganizations returns n deterministic organizations. Ids start at
// 1; created and modified timestamps spread backwards from epoch so every sort
// column produces a distinct order.
func GenerateOrganizations(n int, epoch time.Time) []collection.Organization {
	orgs := make([]collection.Organization, 0, n)
	for i := range n {
		name := orgNames[i%len(orgNames)]
		if round := i / len(orgNames); round > 0 {
			name = fmt.Sprintf("%s %d", name, round+1)
		}
		created := epoch.Add(-time.Duration(n-i) * 24 * time.Hour)
		// Modified order differs from created order: odd ids were touched recently.
		modified := created.Add(time.Duration((i*7)%n+1) * time.Hour)

		orgs = append(orgs, collection.Organization{
			ID:          i + 1,
			Name:        name,
			Description: "Generated organization " + name,
			Created:     created.UTC(),
			Modified:    modified.UTC(),
			SummaryFields: collection.SummaryFields{
				RelatedFieldCounts: collection.RelatedFieldCounts{
					Users:  (i * 3) % 17,
					Teams:  i % 5,
					Admins: 1 + i%3,
				},
			},
		})
	}
	return orgs
}
