package tree

type CARTOption func(*CART)

// WithMinSplit sets the minimum number of samples a node must hold to
// attempt a split.
func WithMinSplit(minSplit int) CARTOption {
	return func(c *CART) {
		if minSplit > 1 {
			c.minSplit = minSplit
		}
	}
}

// WithMaxDepth bounds the tree depth.
func WithMaxDepth(maxDepth int) CARTOption {
	return func(c *CART) {
		if maxDepth > 0 {
			c.maxDepth = maxDepth
		}
	}
}

// WithComplexityPenalty sets the fraction of the root squared error a
// split must remove to be kept. Zero disables pruning and lets the
// tree grow to a near-perfect training fit.
func WithComplexityPenalty(penalty float64) CARTOption {
	return func(c *CART) {
		if penalty >= 0 {
			c.complexityPenalty = penalty
		}
	}
}

type CTreeOption func(*CTree)

// WithMinCriterion sets the criterion 1 - alpha a feature association
// must exceed for the node to split.
func WithMinCriterion(criterion float64) CTreeOption {
	return func(c *CTree) {
		if criterion > 0 && criterion < 1 {
			c.minCriterion = criterion
		}
	}
}

// WithCTreeMinSplit sets the minimum node size to attempt a split.
func WithCTreeMinSplit(minSplit int) CTreeOption {
	return func(c *CTree) {
		if minSplit > 1 {
			c.minSplit = minSplit
		}
	}
}

// WithMinBucket sets the minimum number of samples in a child node.
func WithMinBucket(minBucket int) CTreeOption {
	return func(c *CTree) {
		if minBucket > 0 {
			c.minBucket = minBucket
		}
	}
}

// WithPermutations sets the number of label shuffles per independence
// test.
func WithPermutations(permutations int) CTreeOption {
	return func(c *CTree) {
		if permutations > 0 {
			c.permutations = permutations
		}
	}
}

// WithSeed seeds the permutation generator so fits are reproducible.
func WithSeed(seed int64) CTreeOption {
	return func(c *CTree) {
		c.seed = seed
	}
}
