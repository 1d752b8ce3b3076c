package mapreduce

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dtnitsch/tweetstats/models"
	"github.com/dtnitsch/tweetstats/pkg/analytics"
)

// ClusterTable maps a cluster label to the aggregated term frequency of all
// records carrying that label.
type ClusterTable map[string]analytics.TermFrequency

// Labels returns the cluster labels in ascending order.
func (t ClusterTable) Labels() []string {
	labels := make([]string, 0, len(t))
	for l := range t {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Map generates a word frequency map for a single document's content.
func Map(content string, a *analytics.Analytics) analytics.TermFrequency {
	return a.WordFrequency(content)
}

// Reduce aggregates a slice of word frequency maps into a single map.
func Reduce(intermediate []analytics.TermFrequency) analytics.TermFrequency {
	finalResults := make(analytics.TermFrequency)

	for _, counts := range intermediate {
		finalResults.Add(counts)
	}

	return finalResults
}

// Merge sums tables per (cluster, word). The operation is commutative and
// associative, so shard results can be combined in any order.
func Merge(tables ...ClusterTable) ClusterTable {
	out := make(ClusterTable)
	for _, t := range tables {
		for label, tf := range t {
			if out[label] == nil {
				out[label] = make(analytics.TermFrequency, len(tf))
			}
			out[label].Add(tf)
		}
	}
	return out
}

// ReduceByCluster tokenizes textCol of every record and accumulates the
// counts under the record's clusterCol value.
func ReduceByCluster(ds *models.Dataset, textCol, clusterCol string) (ClusterTable, error) {
	return reduceRange(ds, textCol, clusterCol, 0, ds.Len())
}

// reduceRange maps every record in [from, to) and reduces the maps per
// cluster. A cluster gets an entry only once one of its records has a word.
func reduceRange(ds *models.Dataset, textCol, clusterCol string, from, to int) (ClusterTable, error) {
	a := &analytics.Analytics{}
	intermediate := make(map[string][]analytics.TermFrequency)

	for i := from; i < to; i++ {
		cluster, err := ds.Lookup(i, clusterCol)
		if err != nil {
			return nil, err
		}
		text, err := ds.Lookup(i, textCol)
		if err != nil {
			return nil, err
		}

		if counts := Map(text, a); len(counts) > 0 {
			intermediate[cluster] = append(intermediate[cluster], counts)
		}
	}

	table := make(ClusterTable, len(intermediate))
	for cluster, counts := range intermediate {
		table[cluster] = Reduce(counts)
	}
	return table, nil
}

// ReduceByClusterParallel splits the dataset into contiguous shards, reduces
// them on up to workers goroutines and merges the shard tables. The result
// equals ReduceByCluster. The first shard error cancels the rest.
func ReduceByClusterParallel(ctx context.Context, ds *models.Dataset, textCol, clusterCol string, workers int) (ClusterTable, error) {
	if workers <= 1 || ds.Len() < 2 {
		return ReduceByCluster(ds, textCol, clusterCol)
	}
	if workers > ds.Len() {
		workers = ds.Len()
	}

	shardSize := (ds.Len() + workers - 1) / workers
	shards := make([]ClusterTable, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		from := w * shardSize
		to := from + shardSize
		if to > ds.Len() {
			to = ds.Len()
		}
		if from >= to {
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			table, err := reduceRange(ds, textCol, clusterCol, from, to)
			if err != nil {
				return err
			}
			shards[w] = table
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Merge(shards...), nil
}
