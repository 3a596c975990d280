package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/olivere/elastic/v7"
)

// searchStages are the broadening radii tried in order until enough candidates
// are found.
var searchStages = []string{"500m", "1km", "2km"}

const (
	minNearbyResults = 5
	nearbyPageSize   = 20

	// DefaultTimeout bounds one full Nearby call, all stages included.
	DefaultTimeout = 5 * time.Second
)

// ElasticProvider searches an Elasticsearch index of candidate places, sorted
// by geo distance from the query point.
type ElasticProvider struct {
	client  *elastic.Client
	index   string
	timeout time.Duration
}

// NewElasticProvider connects to Elasticsearch at the given URL.
func NewElasticProvider(url, index string, timeout time.Duration) (*ElasticProvider, error) {
	client, err := elastic.NewClient(elastic.SetURL(url), elastic.SetSniff(false))
	if err != nil {
		return nil, fmt.Errorf("search: failed to create elastic client: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ElasticProvider{client: client, index: index, timeout: timeout}, nil
}

// Nearby returns candidate places around the coordinate, nearest first. The
// search radius broadens in stages until enough candidates are found, and the
// whole batch runs under a bounded deadline.
func (p *ElasticProvider) Nearby(ctx context.Context, lat, lon float64) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var candidates []Candidate
	for _, radius := range searchStages {
		var err error
		candidates, err = p.searchWithin(ctx, lat, lon, radius)
		if err != nil {
			return nil, err
		}
		if len(candidates) >= minNearbyResults {
			break
		}
	}

	return candidates, nil
}

func (p *ElasticProvider) searchWithin(ctx context.Context, lat, lon float64, radius string) ([]Candidate, error) {
	query := elastic.NewBoolQuery().Filter(
		elastic.NewGeoDistanceQuery("location").Point(lat, lon).Distance(radius),
	)

	result, err := p.client.Search().
		Index(p.index).
		Query(query).
		SortBy(elastic.NewGeoDistanceSort("location").
			Point(lat, lon).
			Asc().
			Unit("m").
			DistanceType("arc").
			IgnoreUnmapped(true)).
		Size(nearbyPageSize).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: nearby query within %s failed: %w", radius, err)
	}

	candidates := make([]Candidate, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		candidate, err := decodeCandidate(hit.Source)
		if err != nil {
			// A malformed document should not sink the whole batch.
			continue
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

// placeDoc is the indexed document shape.
type placeDoc struct {
	Name     string `json:"name"`
	Location struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"location"`
}

func decodeCandidate(src json.RawMessage) (Candidate, error) {
	var doc placeDoc
	if err := json.Unmarshal(src, &doc); err != nil {
		return Candidate{}, fmt.Errorf("search: failed to decode place document: %w", err)
	}
	return Candidate{
		Name:      doc.Name,
		Latitude:  doc.Location.Lat,
		Longitude: doc.Location.Lon,
	}, nil
}
