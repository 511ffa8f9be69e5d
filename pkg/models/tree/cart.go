package tree

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// CART fits a regression tree by greedy binary partitioning: at each
// node the split minimizing the summed squared error of the two
// children is taken, and a split is kept only if it removes at least a
// ComplexityPenalty fraction of the root's squared error.
type CART struct {
	minSplit          int
	maxDepth          int
	complexityPenalty float64
}

func NewCART(options ...CARTOption) *CART {
	c := &CART{
		minSplit:          20,
		maxDepth:          30,
		complexityPenalty: 0.01,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Fit builds the tree. Fewer rows than the minimum split size yields a
// single-leaf model predicting the target mean.
func (c *CART) Fit(x mat.Matrix, y []float64) (*Model, error) {
	rows, cols := x.Dims()
	if rows == 0 || len(y) == 0 {
		return nil, ErrEmptyTrainingSet
	}
	if rows != len(y) {
		return nil, ErrDimensionsDiffer
	}

	features := matrixRows(x)
	rootSSE := sse(y)

	root := c.build(features, y, 0, rootSSE)
	return &Model{root: root, nFeatures: cols, splits: countSplits(root)}, nil
}

func (c *CART) build(features [][]float64, y []float64, level int, rootSSE float64) *node {
	if len(y) < c.minSplit || level >= c.maxDepth {
		return leafNode(y)
	}

	feature, threshold, gain := c.bestSplit(features, y)
	if feature < 0 || gain < c.complexityPenalty*rootSSE {
		return leafNode(y)
	}

	leftX, leftY, rightX, rightY := partition(features, y, feature, threshold)
	if len(leftY) == 0 || len(rightY) == 0 {
		return leafNode(y)
	}

	return &node{
		feature:   feature,
		threshold: threshold,
		samples:   len(y),
		left:      c.build(leftX, leftY, level+1, rootSSE),
		right:     c.build(rightX, rightY, level+1, rootSSE),
	}
}

// bestSplit scans every feature and every midpoint between adjacent
// distinct values. Child errors are computed from running sums so each
// feature costs one sort plus one pass.
func (c *CART) bestSplit(features [][]float64, y []float64) (int, float64, float64) {
	n := len(y)
	parentSSE := sse(y)

	bestFeature := -1
	bestThreshold := 0.0
	bestChildSSE := math.Inf(1)

	order := make([]int, n)
	for f := 0; f < len(features[0]); f++ {
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return features[order[a]][f] < features[order[b]][f]
		})

		var totalSum, totalSq float64
		for _, v := range y {
			totalSum += v
			totalSq += v * v
		}

		var leftSum, leftSq float64
		for i := 0; i < n-1; i++ {
			v := y[order[i]]
			leftSum += v
			leftSq += v * v

			cur := features[order[i]][f]
			next := features[order[i+1]][f]
			if cur == next {
				continue
			}

			nl := float64(i + 1)
			nr := float64(n - i - 1)
			leftSSE := leftSq - leftSum*leftSum/nl
			rightSum := totalSum - leftSum
			rightSSE := (totalSq - leftSq) - rightSum*rightSum/nr

			if childSSE := leftSSE + rightSSE; childSSE < bestChildSSE {
				bestChildSSE = childSSE
				bestFeature = f
				bestThreshold = (cur + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return -1, 0, 0
	}
	return bestFeature, bestThreshold, parentSSE - bestChildSSE
}

func partition(features [][]float64, y []float64, feature int, threshold float64) ([][]float64, []float64, [][]float64, []float64) {
	var leftX, rightX [][]float64
	var leftY, rightY []float64
	for i, row := range features {
		if row[feature] <= threshold {
			leftX = append(leftX, row)
			leftY = append(leftY, y[i])
		} else {
			rightX = append(rightX, row)
			rightY = append(rightY, y[i])
		}
	}
	return leftX, leftY, rightX, rightY
}
