package constellation

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-modem/modem"
)

// ClusterOption configures DetectClusters.
type ClusterOption func(*clusterConfig)

type clusterConfig struct {
	iterations int
	seed       int64
}

func defaultClusterConfig() clusterConfig {
	return clusterConfig{
		iterations: 100,
		seed:       1,
	}
}

// WithIterations bounds the number of Lloyd refinement passes.
// Values below one are ignored.
func WithIterations(n int) ClusterOption {
	return func(c *clusterConfig) {
		if n > 0 {
			c.iterations = n
		}
	}
}

// WithSeed sets the seed for centroid initialization.
func WithSeed(seed int64) ClusterOption {
	return func(c *clusterConfig) {
		c.seed = seed
	}
}

// DetectClusters estimates an m-point constellation from received samples
// with k-means. Centroids are seeded k-means++ style from a fixed seed, so
// identical input gives an identical map. The result is ordered by
// amplitude then angle and is neither pruned nor normalized; pass it through
// Build(Custom(...), m) to obtain a decision-ready map.
func DetectClusters(samples []complex64, m int, opts ...ClusterOption) (Map, error) {
	if m < 1 {
		return nil, fmt.Errorf("constellation: detect %d clusters: %w", m, modem.ErrConfiguration)
	}
	if len(samples) < m {
		return nil, fmt.Errorf("constellation: %d samples for %d clusters: %w", len(samples), m, modem.ErrConstellation)
	}

	cfg := defaultClusterConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	pts := make([]complex128, len(samples))
	for i, s := range samples {
		pts[i] = complex128(s)
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	centroids := seedCentroids(pts, m, rng)
	assign := make([]int, len(pts))

	sums := make([]complex128, m)
	counts := make([]int, m)

	for iter := 0; iter < cfg.iterations; iter++ {
		changed := iter == 0
		for i, p := range pts {
			if k := nearest(centroids, p); k != assign[i] {
				assign[i] = k
				changed = true
			}
		}
		if !changed {
			break
		}

		for k := range sums {
			sums[k] = 0
			counts[k] = 0
		}
		for i, p := range pts {
			sums[assign[i]] += p
			counts[assign[i]]++
		}
		for k := range centroids {
			if counts[k] == 0 {
				// empty cluster: restart it on the worst-fit sample
				centroids[k] = farthest(pts, centroids, assign)
				continue
			}
			centroids[k] = sums[k] / complex(float64(counts[k]), 0)
		}
	}

	out := Map(centroids)
	sortByRadius(out)
	return out, nil
}

// seedCentroids picks the first centroid uniformly and each following one
// with probability proportional to its squared distance from the nearest
// centroid chosen so far.
func seedCentroids(pts []complex128, m int, rng *rand.Rand) []complex128 {
	centroids := make([]complex128, 0, m)
	centroids = append(centroids, pts[rng.Intn(len(pts))])

	dist := make([]float64, len(pts))
	for len(centroids) < m {
		total := 0.0
		for i, p := range pts {
			dist[i] = power(p - centroids[nearest(centroids, p)])
			total += dist[i]
		}

		if total == 0 {
			centroids = append(centroids, pts[rng.Intn(len(pts))])
			continue
		}

		target := rng.Float64() * total
		pick := len(pts) - 1
		for i, d := range dist {
			target -= d
			if target < 0 {
				pick = i
				break
			}
		}
		centroids = append(centroids, pts[pick])
	}
	return centroids
}

func nearest(centroids []complex128, p complex128) int {
	best := 0
	bestDist := math.Inf(1)
	for k, c := range centroids {
		if d := power(p - c); d < bestDist {
			best = k
			bestDist = d
		}
	}
	return best
}

func farthest(pts, centroids []complex128, assign []int) complex128 {
	best := pts[0]
	bestDist := -1.0
	for i, p := range pts {
		if d := power(p - centroids[assign[i]]); d > bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}
