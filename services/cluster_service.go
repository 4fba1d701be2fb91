package service

import (
	"fmt"
	"sort"
)

const (
	minCardsToCluster = 3
	maxClusters       = 4
)

// ClusterService groups cards by topic using TF-IDF vectors and k-means.
type ClusterService struct {
	cfg kmeansConfig
}

func NewClusterService() *ClusterService {
	return &ClusterService{cfg: defaultKMeans}
}

// Cluster maps every card id to a cluster label in [0, min(len(cards), 4)).
// Fewer than three cards are not clustered and yield an empty map. Labels
// carry no meaning across calls.
func (s *ClusterService) Cluster(cards map[string]string) (map[string]int, error) {
	clusters := make(map[string]int, len(cards))
	if len(cards) < minCardsToCluster {
		return clusters, nil
	}

	ids := make([]string, 0, len(cards))
	for id := range cards {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	texts := make([]string, len(ids))
	for i, id := range ids {
		texts[i] = cards[id]
	}

	matrix, ok := vectorizeTFIDF(texts)
	if !ok {
		return nil, fmt.Errorf("%w: empty vocabulary, cards may contain only stop words", ErrClustering)
	}

	cfg := s.cfg
	cfg.k = min(len(ids), maxClusters)
	result, err := fitKMeans(matrix.rows, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClustering, err)
	}

	for i, id := range ids {
		clusters[id] = result.labels[i]
	}
	return clusters, nil
}
