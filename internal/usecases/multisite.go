package usecases

import (
	"github.com/openpaddle/paddle-planner/internal/conditions"
	"github.com/openpaddle/paddle-planner/internal/entities"
)

// SiteConfig describes one gauge site and its acceptable range for a
// multi-site status check.
type SiteConfig struct {
	Name     string
	SiteID   string
	MinLevel *float64
	MaxLevel *float64
	MinCFS   *float64
	MaxCFS   *float64
}

// SiteStatus pairs a site's display name with its classified water status.
type SiteStatus struct {
	Name   string
	SiteID string
	Status entities.WaterStatus
}

// MultiSiteStatus classifies the current reading of each configured site.
// Failures degrade to per-site error statuses; the batch always completes.
func (p *Planner) MultiSiteStatus(sites []SiteConfig) []SiteStatus {
	results := make([]SiteStatus, 0, len(sites))

	for _, site := range sites {
		spec := entities.RiverSpec{
			MinLevel: site.MinLevel,
			MaxLevel: site.MaxLevel,
			MinCFS:   site.MinCFS,
			MaxCFS:   site.MaxCFS,
		}
		min, max, metric := spec.ActiveBounds()

		reading, err := p.gauges.LatestReading(site.SiteID, metric)
		status := conditions.ClassifyWater(reading, err, min, max, metric)

		results = append(results, SiteStatus{
			Name:   site.Name,
			SiteID: site.SiteID,
			Status: status,
		})
	}

	return results
}
