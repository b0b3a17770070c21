package services

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// ClusterModel holds the pre-trained k-means centroids used to bucket job
// postings. Loaded once at process start and read-only afterwards; the
// service never retrains it.
type ClusterModel struct {
	centroids [][]float32
}

// centroidFile is the on-disk model format written by scripts/seed_centroids.go.
type centroidFile struct {
	Dimension int         `json:"dimension"`
	Centroids [][]float32 `json:"centroids"`
}

// LoadClusterModel reads a centroid model from path. A missing or malformed
// model is an error at load time, never a model that assigns wrong ids.
func LoadClusterModel(path string) (*ClusterModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read centroid model: %w", err)
	}

	var file centroidFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse centroid model: %w", err)
	}

	return NewClusterModel(file.Centroids)
}

// NewClusterModel builds a model from an in-memory centroid set.
func NewClusterModel(centroids [][]float32) (*ClusterModel, error) {
	if len(centroids) == 0 {
		return nil, fmt.Errorf("centroid model has no centroids")
	}

	dim := len(centroids[0])
	if dim == 0 {
		return nil, fmt.Errorf("centroid model has zero-dimension centroids")
	}
	for i, c := range centroids {
		if len(c) != dim {
			return nil, fmt.Errorf("centroid %d has dimension %d, want %d", i, len(c), dim)
		}
	}

	return &ClusterModel{centroids: centroids}, nil
}

// NumClusters returns the number of centroids.
func (m *ClusterModel) NumClusters() int {
	return len(m.centroids)
}

// Dimension returns the vector dimension the model expects.
func (m *ClusterModel) Dimension() int {
	return len(m.centroids[0])
}

// Assign returns the id of the centroid nearest to vec by Euclidean
// distance. Ties go to the lowest id. A dimension mismatch means the
// embedding provider and the model disagree; that is an error, never a
// guessed cluster.
func (m *ClusterModel) Assign(vec []float32) (int, error) {
	if len(vec) != m.Dimension() {
		return 0, fmt.Errorf("vector dimension %d does not match model dimension %d", len(vec), m.Dimension())
	}

	best := 0
	bestDist := math.Inf(1)
	for id, centroid := range m.centroids {
		dist := squaredDistance(vec, centroid)
		if dist < bestDist {
			best = id
			bestDist = dist
		}
	}

	return best, nil
}

func squaredDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
