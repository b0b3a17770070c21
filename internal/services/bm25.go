package services

import (
	"fmt"
	"math"
	"sort"

	"hirely/matching-api/internal/apperrors"
)

// Okapi BM25 constants. Fixed, not configurable: stored scores and
// thresholds downstream assume them.
const (
	bm25K1      = 1.5
	bm25B       = 0.75
	bm25Epsilon = 0.25
)

// BM25Index is an Okapi BM25 index over a tokenized corpus. Built once per
// request over the current candidate set and immutable afterwards, so it is
// safe for concurrent reads.
type BM25Index struct {
	termFrequencies []map[string]int
	docLengths      []int
	avgDocLength    float64
	idf             map[string]float64
}

// NewBM25Index builds an index over corpus, one token slice per candidate
// document. An empty corpus is a distinct "no candidates" condition, not an
// index that silently scores nothing.
func NewBM25Index(corpus [][]string) (*BM25Index, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("empty corpus: %w", apperrors.ErrNotFound)
	}

	index := &BM25Index{
		termFrequencies: make([]map[string]int, len(corpus)),
		docLengths:      make([]int, len(corpus)),
		idf:             make(map[string]float64),
	}

	// Number of documents containing each term, for IDF.
	docFrequency := make(map[string]int)

	var totalLength int
	for i, doc := range corpus {
		index.docLengths[i] = len(doc)
		totalLength += len(doc)

		termFrequency := make(map[string]int, len(doc))
		for _, token := range doc {
			termFrequency[token]++
		}
		for term := range termFrequency {
			docFrequency[term]++
		}
		index.termFrequencies[i] = termFrequency
	}

	index.avgDocLength = float64(totalLength) / float64(len(corpus))

	// IDF per term. Terms present in most documents come out negative and
	// are floored at epsilon times the average IDF.
	docCount := float64(len(corpus))
	var idfSum float64
	var negative []string
	for term, freq := range docFrequency {
		idf := math.Log(docCount-float64(freq)+0.5) - math.Log(float64(freq)+0.5)
		index.idf[term] = idf
		idfSum += idf
		if idf < 0 {
			negative = append(negative, term)
		}
	}
	if len(index.idf) > 0 {
		eps := bm25Epsilon * idfSum / float64(len(index.idf))
		for _, term := range negative {
			index.idf[term] = eps
		}
	}

	return index, nil
}

// Len returns the number of documents in the corpus.
func (index *BM25Index) Len() int {
	return len(index.termFrequencies)
}

// HasTerm reports whether term occurs anywhere in the corpus vocabulary.
func (index *BM25Index) HasTerm(term string) bool {
	_, ok := index.idf[term]
	return ok
}

// Scores computes one BM25 score per corpus document, in corpus order.
// Query terms absent from the corpus contribute zero. An empty query (or a
// corpus of empty documents) yields all-zero scores rather than NaN.
func (index *BM25Index) Scores(query []string) []float64 {
	scores := make([]float64, len(index.termFrequencies))
	if len(query) == 0 || index.avgDocLength == 0 {
		return scores
	}

	for i, termFrequency := range index.termFrequencies {
		docLength := float64(index.docLengths[i])

		var score float64
		for _, term := range query {
			idf, ok := index.idf[term]
			if !ok {
				continue
			}

			tf := float64(termFrequency[term])
			score += idf * (tf * (bm25K1 + 1)) /
				(tf + bm25K1*(1-bm25B+bm25B*docLength/index.avgDocLength))
		}
		scores[i] = score
	}

	return scores
}

// TopK returns the indices of the k highest scores, descending by score
// with ties broken by ascending original index. The stable sort keeps the
// ordering a reproducible total order. If fewer than k scores exist, all
// of them are returned ranked.
func TopK(scores []float64, k int) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > 0 && len(order) > k {
		order = order[:k]
	}
	return order
}
