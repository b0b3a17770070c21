// Builds the centroid model the matching API loads at startup. Embeds a
// reference corpus of job postings and runs k-means over the vectors,
// writing the result as JSON. Run offline whenever the reference corpus
// changes; the server itself never retrains.
//
// Usage:
//
//	go run ./scripts -corpus ./data/reference_jobs.json -out ./data/centroids.json -k 8
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math"
	"math/rand"
	"os"

	"hirely/matching-api/internal/config"
	"hirely/matching-api/internal/services"
)

type referenceJob struct {
	Role        string `json:"role"`
	Description string `json:"description"`
}

type centroidFile struct {
	Dimension int         `json:"dimension"`
	Centroids [][]float32 `json:"centroids"`
}

func main() {
	corpusPath := flag.String("corpus", "./data/reference_jobs.json", "reference job corpus (JSON array of {role, description})")
	outPath := flag.String("out", "./data/centroids.json", "output centroid model path")
	k := flag.Int("k", 8, "number of clusters")
	iterations := flag.Int("iterations", 25, "k-means iterations")
	seed := flag.Int64("seed", 42, "random seed for centroid initialization")
	flag.Parse()

	log.Println("🚀 Building centroid model...")

	cfg := config.Load()

	embedder, err := services.NewGeminiEmbedder(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedding provider: %v", err)
	}

	data, err := os.ReadFile(*corpusPath)
	if err != nil {
		log.Fatalf("❌ Failed to read corpus: %v", err)
	}

	var jobs []referenceJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		log.Fatalf("❌ Failed to parse corpus: %v", err)
	}

	if len(jobs) < *k {
		log.Fatalf("❌ Corpus has %d jobs, need at least k=%d", len(jobs), *k)
	}

	log.Printf("📄 Embedding %d reference jobs...", len(jobs))

	ctx := context.Background()
	vectors := make([][]float32, 0, len(jobs))
	for i, job := range jobs {
		vector, err := embedder.Embed(ctx, job.Role+" "+job.Description)
		if err != nil {
			log.Fatalf("❌ Failed to embed job %d (%s): %v", i, job.Role, err)
		}
		vectors = append(vectors, vector)

		if (i+1)%10 == 0 || i == len(jobs)-1 {
			log.Printf("   📊 Progress: %d/%d embedded", i+1, len(jobs))
		}
	}

	log.Printf("🔄 Running k-means: k=%d, %d iterations", *k, *iterations)
	centroids := kmeans(vectors, *k, *iterations, *seed)

	out := centroidFile{
		Dimension: len(centroids[0]),
		Centroids: centroids,
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to encode model: %v", err)
	}

	if err := os.WriteFile(*outPath, encoded, 0644); err != nil {
		log.Fatalf("❌ Failed to write model: %v", err)
	}

	log.Printf("✅ Wrote %d centroids (%d dims) to %s", len(centroids), out.Dimension, *outPath)
}

// kmeans runs Lloyd's algorithm with seeded random initialization. Empty
// clusters keep their previous centroid.
func kmeans(vectors [][]float32, k, iterations int, seed int64) [][]float32 {
	rng := rand.New(rand.NewSource(seed))
	dim := len(vectors[0])

	// Initialize centroids from k distinct random points.
	centroids := make([][]float32, k)
	for i, idx := range rng.Perm(len(vectors))[:k] {
		centroids[i] = append([]float32(nil), vectors[idx]...)
	}

	assignments := make([]int, len(vectors))
	for iter := 0; iter < iterations; iter++ {
		changed := false
		for i, vector := range vectors {
			best := nearest(vector, centroids)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			log.Printf("   📊 Converged after %d iterations", iter)
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for i := range sums {
			sums[i] = make([]float64, dim)
		}
		for i, vector := range vectors {
			c := assignments[i]
			counts[c]++
			for d, v := range vector {
				sums[c][d] += float64(v)
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < dim; d++ {
				centroids[c][d] = float32(sums[c][d] / float64(counts[c]))
			}
		}
	}

	return centroids
}

func nearest(vector []float32, centroids [][]float32) int {
	best := 0
	bestDist := math.Inf(1)
	for i, centroid := range centroids {
		var dist float64
		for d := range vector {
			diff := float64(vector[d]) - float64(centroid[d])
			dist += diff * diff
		}
		if dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}
