package domain

// NEOFeed models the subset of the near-earth-object feed needed for
// statistics. The full payload is proxied through untouched; this typed view
// only exists for aggregation.
type NEOFeed struct {
	ElementCount     int                    `json:"element_count"`
	NearEarthObjects map[string][]NEOObject `json:"near_earth_objects"`
}

type NEOObject struct {
	Name                   string              `json:"name"`
	IsPotentiallyHazardous bool                `json:"is_potentially_hazardous_asteroid"`
	EstimatedDiameter      EstimatedDiameter   `json:"estimated_diameter"`
	CloseApproachData      []CloseApproachData `json:"close_approach_data"`
}

type EstimatedDiameter struct {
	Kilometers DiameterRange `json:"kilometers"`
}

type DiameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

// CloseApproachData carries distances and velocities; the upstream encodes
// these numerics as strings.
type CloseApproachData struct {
	MissDistance     MissDistance     `json:"miss_distance"`
	RelativeVelocity RelativeVelocity `json:"relative_velocity"`
}

type MissDistance struct {
	Kilometers string `json:"kilometers"`
}

type RelativeVelocity struct {
	KilometersPerHour string `json:"kilometers_per_hour"`
}

// Flatten merges the per-date object lists into one slice.
func (f NEOFeed) Flatten() []NEOObject {
	var all []NEOObject
	for _, objects := range f.NearEarthObjects {
		all = append(all, objects...)
	}
	return all
}

// NEOStats aggregates a feed. Aggregate fields are nil when the feed holds
// no objects; counts stay zero. Non-finite sentinels are never produced.
type NEOStats struct {
	TotalCount                int      `json:"total_count"`
	PotentiallyHazardousCount int      `json:"potentially_hazardous_count"`
	AverageDiameterKm         *float64 `json:"average_diameter_km"`
	ClosestApproachKm         *float64 `json:"closest_approach_km"`
	FastestVelocityKph        *float64 `json:"fastest_velocity_kph"`
}
