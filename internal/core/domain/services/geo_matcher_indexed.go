package services

import (
	"math"
	"slices"
	"sort"
	"time"

	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
)

// boxPaddingDeg widens every bounding box so floating point error can only admit
// extra candidates, which the exact distance check then drops.
const boxPaddingDeg = 1e-6

// IndexedGeoMatcher sorts candidates by latitude, narrows them to a bounding box
// around the query point and computes the exact distance only for what is left.
// It returns the same matches as ScanGeoMatcher.
type IndexedGeoMatcher struct{}

// NewIndexedGeoMatcher creates a bounding box matcher.
func NewIndexedGeoMatcher() IndexedGeoMatcher {
	return IndexedGeoMatcher{}
}

// FindEligible implements GeoMatcher. Each contractor has its own radius, so the box
// is sized by the largest radius among the prefiltered candidates.
func (IndexedGeoMatcher) FindEligible(j *job.Job, candidates []*contractor.Contractor) []ContractorMatch {
	matches := make([]ContractorMatch, 0)
	if j.Validate() != nil {
		return matches
	}

	filtered := make([]*contractor.Contractor, 0, len(candidates))
	var maxRadius float64
	for _, c := range candidates {
		if !prefilterContractor(j, c) {
			continue
		}
		filtered = append(filtered, c)
		maxRadius = math.Max(maxRadius, c.CoverageRadius())
	}

	idx := newGeoIndex(filtered, (*contractor.Contractor).Location)
	for _, c := range idx.within(j.Location(), maxRadius) {
		d := distanceKm(j.Location(), c.Location())
		if d <= c.CoverageRadius() {
			matches = append(matches, ContractorMatch{Contractor: c, DistanceKm: d})
		}
	}

	sortContractorMatches(matches)
	return matches
}

// FindNearbyJobs implements GeoMatcher.
func (IndexedGeoMatcher) FindNearbyJobs(c *contractor.Contractor, radiusKm float64, jobs []*job.Job, now time.Time) []JobMatch {
	matches := make([]JobMatch, 0)
	if c.Validate() != nil || !c.IsMatchable() {
		return matches
	}

	filtered := make([]*job.Job, 0, len(jobs))
	for _, j := range jobs {
		if prefilterJob(c, j, now) {
			filtered = append(filtered, j)
		}
	}

	radius := effectiveRadius(c, radiusKm)
	idx := newGeoIndex(filtered, (*job.Job).Location)
	for _, j := range idx.within(c.Location(), radius) {
		d := distanceKm(j.Location(), c.Location())
		if d <= radius {
			matches = append(matches, JobMatch{Job: j, DistanceKm: d})
		}
	}

	sortJobMatches(matches)
	return matches
}

type geoEntry[T any] struct {
	lat  float64
	long float64
	item T
}

// geoIndex is a latitude-sorted slice of items.
type geoIndex[T any] struct {
	entries []geoEntry[T]
}

func newGeoIndex[T any](items []T, locate func(T) kernel.Location) geoIndex[T] {
	entries := make([]geoEntry[T], 0, len(items))
	for _, item := range items {
		loc := locate(item)
		entries = append(entries, geoEntry[T]{lat: loc.Latitude(), long: loc.Longitude(), item: item})
	}
	slices.SortFunc(entries, func(a, b geoEntry[T]) int {
		switch {
		case a.lat < b.lat:
			return -1
		case a.lat > b.lat:
			return 1
		default:
			return 0
		}
	})
	return geoIndex[T]{entries: entries}
}

// within returns every item whose location may lie within radiusKm of center. The
// result is a superset of the exact answer.
func (idx geoIndex[T]) within(center kernel.Location, radiusKm float64) []T {
	if len(idx.entries) == 0 || radiusKm < 0 {
		return nil
	}

	angular := radiusKm / kernel.EarthRadiusKm
	dLat := angular*180/math.Pi + boxPaddingDeg
	dLong := longitudeSpan(center.Latitude(), angular)

	lo := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].lat >= center.Latitude()-dLat
	})

	out := make([]T, 0)
	for i := lo; i < len(idx.entries); i++ {
		e := idx.entries[i]
		if e.lat > center.Latitude()+dLat {
			break
		}
		if longitudeGap(center.Longitude(), e.long) <= dLong {
			out = append(out, e.item)
		}
	}
	return out
}

// longitudeSpan is the largest longitude difference, in degrees, of any point within
// the given angular distance of a point at latitude lat. Near the poles, or when the
// circle wraps around the earth, every longitude qualifies.
func longitudeSpan(lat, angular float64) float64 {
	latRad := lat * math.Pi / 180
	if angular >= math.Pi/2-math.Abs(latRad) {
		return 360
	}
	return math.Asin(math.Sin(angular)/math.Cos(latRad))*180/math.Pi + boxPaddingDeg
}

// longitudeGap is the absolute longitude difference across the antimeridian.
func longitudeGap(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}
