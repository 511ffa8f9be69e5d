package tree

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// CTree fits a conditional-inference regression tree. At each node a
// seeded permutation test measures the association between every
// feature and the target; the node splits only if the smallest p-value
// stays below 1 - MinCriterion, on the feature with the strongest
// association, at the cut maximizing the standardized two-sample
// statistic.
type CTree struct {
	minCriterion float64
	minSplit     int
	minBucket    int
	permutations int
	seed         int64
}

func NewCTree(options ...CTreeOption) *CTree {
	c := &CTree{
		minCriterion: 0.95,
		minSplit:     20,
		minBucket:    7,
		permutations: 199,
		seed:         1,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Fit builds the tree. Fewer rows than the minimum split size yields a
// single-leaf model predicting the target mean.
func (c *CTree) Fit(x mat.Matrix, y []float64) (*Model, error) {
	rows, cols := x.Dims()
	if rows == 0 || len(y) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if rows != len(y) {
		return nil, ErrDimensionsDiffer
	}

	rng := rand.New(rand.NewSource(c.seed))
	features := matrixRows(x)

	root := c.build(features, y, rng)
	return &Model{root: root, nFeatures: cols, splits: countSplits(root)}, nil
}

func (c *CTree) build(features [][]float64, y []float64, rng *rand.Rand) *node {
	if len(y) < c.minSplit {
		return leafNode(y)
	}

	feature, pValue := c.selectFeature(features, y, rng)
	if feature < 0 || pValue > 1-c.minCriterion {
		return leafNode(y)
	}

	threshold, ok := c.bestCut(features, y, feature)
	if !ok {
		return leafNode(y)
	}

	leftX, leftY, rightX, rightY := partition(features, y, feature, threshold)
	if len(leftY) < c.minBucket || len(rightY) < c.minBucket {
		return leafNode(y)
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		samples:   len(y),
		left:      c.build(leftX, leftY, rng),
		right:     c.build(rightX, rightY, rng),
	}
}

// selectFeature runs one permutation test per feature and returns the
// feature with the smallest p-value, ties broken by the larger observed
// statistic.
func (c *CTree) selectFeature(features [][]float64, y []float64, rng *rand.Rand) (int, float64) {
	nFeatures := len(features[0])

	best := -1
	bestP := math.Inf(1)
	bestStat := 0.0

	shuffled := make([]float64, len(y))
	copy(shuffled, y)

	for f := 0; f < nFeatures; f++ {
		column := make([]float64, len(y))
		for i, row := range features {
			column[i] = row[f]
		}

		observed := math.Abs(linearStatistic(column, y))
		if observed == 0 {
			continue
		}

		exceed := 0
		for p := 0; p < c.permutations; p++ {
			rng.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			if math.Abs(linearStatistic(column, shuffled)) >= observed {
				exceed++
			}
		}
		pValue := float64(exceed+1) / float64(c.permutations+1)

		if pValue < bestP || (pValue == bestP && observed > bestStat) {
			bestP = pValue
			bestStat = observed
			best = f
		}
	}
	return best, bestP
}

// linearStatistic is the standardized linear association statistic
// sqrt(n) * corr(x, y).
func linearStatistic(x, y []float64) float64 {
	n := float64(len(y))
	xbar := mean(x)
	ybar := mean(y)

	var cross, sx, sy float64
	for i := range y {
		dx := x[i] - xbar
		dy := y[i] - ybar
		cross += dx * dy
		sx += dx * dx
		sy += dy * dy
	}
	if sx == 0 || sy == 0 {
		return 0
	}
	return math.Sqrt(n) * cross / (math.Sqrt(sx) * math.Sqrt(sy))
}

// bestCut maximizes the standardized difference of child means over
// cut points honoring the minimum bucket size.
func (c *CTree) bestCut(features [][]float64, y []float64, feature int) (float64, bool) {
	n := len(y)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return features[order[a]][feature] < features[order[b]][feature]
	})

	var totalSum float64
	for _, v := range y {
		totalSum += v
	}

	bestStat := 0.0
	bestThreshold := 0.0
	found := false

	var leftSum float64
	for i := 0; i < n-1; i++ {
		leftSum += y[order[i]]

		nl := i + 1
		nr := n - nl
		if nl < c.minBucket || nr < c.minBucket {
			continue
		}

		cur := features[order[i]][feature]
		next := features[order[i+1]][feature]
		if cur == next {
			continue
		}

		diff := leftSum/float64(nl) - (totalSum-leftSum)/float64(nr)
		stat := math.Abs(diff) * math.Sqrt(float64(nl)*float64(nr)/float64(n))
		if stat > bestStat {
			bestStat = stat
			bestThreshold = (cur + next) / 2
			found = true
		}
	}
	return bestThreshold, found
}
