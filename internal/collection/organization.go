package collection

import "time"

// Organization is one record of the organizations collection.
type Organization struct {
	ID            int           `json:"id"            yaml:"id"`
	Name          string        `json:"name"          yaml:"name"`
	Description   string        `json:"description"   yaml:"description"`
	Created       time.Time     `json:"created"       yaml:"created"`
	Modified      time.Time     `json:"modified"      yaml:"modified"`
	SummaryFields SummaryFields `json:"summary_fields" yaml:"summary_fields"`
}

// SummaryFields holds the nested summary of an organization.
type SummaryFields struct {
	RelatedFieldCounts RelatedFieldCounts `json:"related_field_counts" yaml:"related_field_counts"`
}

// RelatedFieldCounts counts the objects related to an organization.
type RelatedFieldCounts struct {
	Users  int `json:"users"  yaml:"users"`
	Teams  int `json:"teams"  yaml:"teams"`
	Admins int `json:"admins" yaml:"admins"`
}

// GetID returns the selection key of the organization.
func (o Organization) GetID() int {
	return o.ID
}
