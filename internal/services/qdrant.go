package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"hirely/matching-api/internal/apperrors"
)

// VectorStore persists job embeddings and answers similarity queries.
// Current ranking only needs the cluster id cached on the job row; the
// stored vectors serve FetchJob and cluster-scoped similarity lookups.
type VectorStore interface {
	InitCollection(vectorSize uint64) error
	UpsertJob(ctx context.Context, jobID uuid.UUID, vector []float32, role string, clusterID int) error
	FetchJob(ctx context.Context, jobID uuid.UUID) (*JobVector, error)
	SearchSimilar(ctx context.Context, queryVector []float32, clusterID int, limit int) ([]JobVector, error)
	DeleteJob(ctx context.Context, jobID uuid.UUID) error
}

// JobVector is a stored job point with its payload.
type JobVector struct {
	JobID     string
	Role      string
	ClusterID int
	Score     float32
}

type qdrantVectorStore struct {
	client         *qdrant.Client
	collectionName string
}

func NewQdrantVectorStore(urlStr, apiKey, collectionName string) (VectorStore, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantVectorStore{
		client:         client,
		collectionName: collectionName,
	}, nil
}

// InitCollection implements VectorStore. vectorSize must match the
// embedding provider's dimension.
func (q *qdrantVectorStore) InitCollection(vectorSize uint64) error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertJob implements VectorStore. The job id also lives in the payload so
// lookups and deletes can filter on it.
func (q *qdrantVectorStore) UpsertJob(ctx context.Context, jobID uuid.UUID, vector []float32, role string, clusterID int) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(jobID.ID())),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"job_id":     jobID.String(),
			"role":       role,
			"cluster_id": clusterID,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert job vector: %w", err)
	}

	return nil
}

// FetchJob implements VectorStore.
func (q *qdrantVectorStore) FetchJob(ctx context.Context, jobID uuid.UUID) (*JobVector, error) {
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("job_id", jobID.String()),
			},
		},
		Limit:       qdrant.PtrOf(uint64(1)),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch job vector: %w", err)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("job vector %s: %w", jobID, apperrors.ErrNotFound)
	}

	result := fromPayload(points[0].Payload)
	result.Score = points[0].Score
	return result, nil
}

// SearchSimilar implements VectorStore. clusterID < 0 searches across all
// clusters.
func (q *qdrantVectorStore) SearchSimilar(ctx context.Context, queryVector []float32, clusterID int, limit int) ([]JobVector, error) {
	var filter *qdrant.Filter
	if clusterID >= 0 {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatchInt("cluster_id", int64(clusterID)),
			},
		}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryVector...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search similar jobs: %w", err)
	}

	results := make([]JobVector, 0, len(points))
	for _, point := range points {
		result := fromPayload(point.Payload)
		result.Score = point.Score
		results = append(results, *result)
	}

	return results, nil
}

// DeleteJob implements VectorStore.
func (q *qdrantVectorStore) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("job_id", jobID.String()),
		},
	}

	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete job vector: %w", err)
	}

	return nil
}

func fromPayload(payload map[string]*qdrant.Value) *JobVector {
	result := &JobVector{}

	if jobID, ok := payload["job_id"]; ok {
		if val, ok := jobID.GetKind().(*qdrant.Value_StringValue); ok {
			result.JobID = val.StringValue
		}
	}

	if role, ok := payload["role"]; ok {
		if val, ok := role.GetKind().(*qdrant.Value_StringValue); ok {
			result.Role = val.StringValue
		}
	}

	if cluster, ok := payload["cluster_id"]; ok {
		if val, ok := cluster.GetKind().(*qdrant.Value_IntegerValue); ok {
			result.ClusterID = int(val.IntegerValue)
		}
	}

	return result
}
