package core

import (
	"math/rand"
	"sort"

	"github.com/beastmode/notable/schema"
)

// Default hyperparameters for the forest trainer.
const (
	DefaultTreeCount  = 10
	DefaultMaxDepth   = 6
	DefaultMinSamples = 5
)

// ForestOptions configures the random-forest trainer. Rand drives bootstrap
// sampling; pass a seeded source for reproducible forests.
type ForestOptions struct {
	Trees      int
	MaxDepth   int
	MinSamples int
	Rand       *rand.Rand
}

func (o ForestOptions) withDefaults() ForestOptions {
	if o.Trees <= 0 {
		o.Trees = DefaultTreeCount
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MinSamples <= 0 {
		o.MinSamples = DefaultMinSamples
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(1))
	}
	return o
}

// TrainForest grows an ensemble of CART regression trees over bootstrap
// samples of the dataset. Splits maximize variance reduction; a node becomes
// a leaf at the depth limit, below the sample minimum, or when no split
// improves variance.
func TrainForest(x [][]float64, y []float64, opts ForestOptions) []*schema.TreeNode {
	opts = opts.withDefaults()
	if len(x) == 0 {
		return nil
	}
	trees := make([]*schema.TreeNode, opts.Trees)
	for t := 0; t < opts.Trees; t++ {
		idx := bootstrap(len(x), opts.Rand)
		trees[t] = buildTree(x, y, idx, 0, opts)
	}
	return trees
}

// bootstrap draws n sample indices with replacement.
func bootstrap(n int, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}
	return idx
}

func buildTree(x [][]float64, y []float64, idx []int, depth int, opts ForestOptions) *schema.TreeNode {
	if depth >= opts.MaxDepth || len(idx) < opts.MinSamples {
		return leaf(y, idx)
	}
	feature, threshold, left, right, ok := bestSplit(x, y, idx)
	if !ok {
		return leaf(y, idx)
	}
	return &schema.TreeNode{
		Type:       schema.SplitNode,
		FeatureIdx: feature,
		Threshold:  threshold,
		Left:       buildTree(x, y, left, depth+1, opts),
		Right:      buildTree(x, y, right, depth+1, opts),
	}
}

func leaf(y []float64, idx []int) *schema.TreeNode {
	return &schema.TreeNode{Type: schema.LeafNode, Value: meanAt(y, idx)}
}

// bestSplit scans every feature and every distinct value as a candidate
// threshold, keeping the split with the highest variance reduction. Returns
// ok=false when no candidate separates the samples or improves variance.
func bestSplit(x [][]float64, y []float64, idx []int) (feature int, threshold float64, left, right []int, ok bool) {
	parentVar := varianceAt(y, idx)
	if parentVar == 0 {
		return 0, 0, nil, nil, false
	}
	n := float64(len(idx))
	bestGain := 0.0

	for f := range x[idx[0]] {
		for _, i := range idx {
			t := x[i][f]
			var l, r []int
			for _, j := range idx {
				if x[j][f] <= t {
					l = append(l, j)
				} else {
					r = append(r, j)
				}
			}
			if len(l) == 0 || len(r) == 0 {
				continue
			}
			gain := parentVar -
				(float64(len(l))/n)*varianceAt(y, l) -
				(float64(len(r))/n)*varianceAt(y, r)
			if gain > bestGain {
				bestGain = gain
				feature, threshold = f, t
				left, right = l, r
				ok = true
			}
		}
	}
	return feature, threshold, left, right, ok
}

func meanAt(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func varianceAt(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	mean := meanAt(y, idx)
	var sq float64
	for _, i := range idx {
		d := y[i] - mean
		sq += d * d
	}
	return sq / float64(len(idx))
}

// FeatureImportances ranks features by their share of split nodes across the
// forest. Features that never split are omitted.
func FeatureImportances(trees []*schema.TreeNode, names []string) []schema.FeatureImportance {
	counts := make(map[int]int)
	total := 0
	for _, tree := range trees {
		total += countSplits(tree, counts)
	}
	if total == 0 {
		return nil
	}
	out := make([]schema.FeatureImportance, 0, len(counts))
	for f, c := range counts {
		if f < 0 || f >= len(names) {
			continue
		}
		out = append(out, schema.FeatureImportance{
			Name:       names[f],
			Importance: float64(c) / float64(total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Importance != out[j].Importance {
			return out[i].Importance > out[j].Importance
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func countSplits(node *schema.TreeNode, counts map[int]int) int {
	if node == nil || node.Type != schema.SplitNode {
		return 0
	}
	counts[node.FeatureIdx]++
	return 1 + countSplits(node.Left, counts) + countSplits(node.Right, counts)
}

// ForestVariance measures the spread of per-tree predictions for one row.
// Used as a rough confidence signal on the serving path.
func ForestVariance(trees []*schema.TreeNode, row []float64) float64 {
	if len(trees) == 0 {
		return 0
	}
	preds := make([]float64, len(trees))
	var mean float64
	for i, tree := range trees {
		preds[i] = PredictTree(tree, row)
		mean += preds[i]
	}
	mean /= float64(len(trees))
	var sq float64
	for _, p := range preds {
		d := p - mean
		sq += d * d
	}
	return sq / float64(len(trees))
}
