// Package tree implements binary regression trees over a feature
// matrix. Two fitters are provided: a greedy CART-style partitioner
// pruned by a complexity penalty, and a conditional-inference variant
// that splits only on features with a statistically significant
// association to the target.
package tree

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyTrainingSet = errors.New("training set is empty")
	ErrDimensionsDiffer = errors.New("feature row count does not match target length")
)

type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	leaf      bool
	value     float64
	samples   int
}

// Model is an immutable fitted regression tree.
type Model struct {
	root      *node
	nFeatures int
	splits    int
}

// Predict evaluates the tree for every row of x.
func (m *Model) Predict(x mat.Matrix) []float64 {
	rows, _ := x.Dims()
	out := make([]float64, rows)
	row := make([]float64, m.nFeatures)
	for i := 0; i < rows; i++ {
		for j := 0; j < m.nFeatures; j++ {
			row[j] = x.At(i, j)
		}
		out[i] = m.PredictRow(row)
	}
	return out
}

// PredictRow descends from the root to a leaf for a single feature row.
func (m *Model) PredictRow(row []float64) float64 {
	n := m.root
	for !n.leaf {
		if row[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// Splits reports the number of internal nodes.
func (m *Model) Splits() int {
	return m.splits
}

// Depth reports the length of the longest root-to-leaf path.
func (m *Model) Depth() int {
	return depth(m.root)
}

func depth(n *node) int {
	if n == nil || n.leaf {
		return 0
	}
	l := depth(n.left)
	r := depth(n.right)
	if l > r {
		return l + 1
	}
	return r + 1
}

func countSplits(n *node) int {
	if n == nil || n.leaf {
		return 0
	}
	return 1 + countSplits(n.left) + countSplits(n.right)
}

func matrixRows(x mat.Matrix) [][]float64 {
	rows, cols := x.Dims()
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = x.At(i, j)
		}
	}
	return out
}

func mean(values []float64) float64 {
	return stat.Mean(values, nil)
}

// sse returns the sum of squared deviations from the mean.
func sse(values []float64) float64 {
	m := mean(values)
	var ss float64
	for _, v := range values {
		ss += (v - m) * (v - m)
	}
	return ss
}

func leafNode(y []float64) *node {
	return &node{leaf: true, value: mean(y), samples: len(y)}
}
