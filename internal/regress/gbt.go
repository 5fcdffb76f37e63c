package regress

import (
	"errors"
	"math"
	"sort"

	"golang.org/x/exp/rand"
)

var (
	// ErrNoTrainingData is returned when Fit is called with an empty set.
	ErrNoTrainingData = errors.New("regress: no training data")
	// ErrShapeMismatch is returned when features and targets disagree in
	// length, or feature rows have uneven widths.
	ErrShapeMismatch = errors.New("regress: feature/target shape mismatch")
)

// TreeNode is one node of a regression tree. Leaf nodes have Left == -1 and
// Right == -1 and carry the leaf value. Fields are exported for gob encoding.
type TreeNode struct {
	Feature   int
	Threshold float64
	Value     float64
	Left      int
	Right     int
}

// Tree is a regression tree stored as a flat node slice, root at index 0.
type Tree struct {
	Nodes []TreeNode
}

func (t *Tree) predict(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Left < 0 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// GBTRegressor is a gradient-boosted ensemble of regression trees fit with
// squared-error loss. All fields are exported for gob persistence.
type GBTRegressor struct {
	Base      float64
	Rate      float64
	NFeatures int
	Trees     []Tree
}

// Predict evaluates the ensemble on a single feature vector. Vectors of the
// wrong width yield the base prediction only.
func (m *GBTRegressor) Predict(x []float64) float64 {
	p := m.Base
	if len(x) != m.NFeatures {
		return p
	}
	for i := range m.Trees {
		p += m.Rate * m.Trees[i].predict(x)
	}
	return p
}

// FitGBT trains a boosted ensemble on the given matrix. Rows of X are feature
// vectors, y the targets. Training is deterministic for a fixed seed.
func FitGBT(x [][]float64, y []float64, hp Hyperparameters) (*GBTRegressor, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(x) != len(y) {
		return nil, ErrShapeMismatch
	}
	width := len(x[0])
	for _, row := range x {
		if len(row) != width {
			return nil, ErrShapeMismatch
		}
	}

	base := 0.0
	for _, v := range y {
		base += v
	}
	base /= float64(len(y))

	m := &GBTRegressor{
		Base:      base,
		Rate:      hp.LearningRate,
		NFeatures: width,
		Trees:     make([]Tree, 0, hp.NEstimators),
	}

	pred := make([]float64, len(y))
	for i := range pred {
		pred[i] = base
	}
	resid := make([]float64, len(y))

	rng := rand.New(rand.NewSource(hp.Seed))
	all := make([]int, len(y))
	for i := range all {
		all[i] = i
	}
	sampleN := int(math.Round(hp.Subsample * float64(len(y))))
	if sampleN < 1 {
		sampleN = 1
	}

	b := treeBuilder{x: x, hp: hp}
	for t := 0; t < hp.NEstimators; t++ {
		for i := range resid {
			resid[i] = y[i] - pred[i]
		}
		rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
		idx := make([]int, sampleN)
		copy(idx, all[:sampleN])

		tree := b.build(resid, idx)
		m.Trees = append(m.Trees, tree)
		for i, row := range x {
			pred[i] += hp.LearningRate * tree.predict(row)
		}
	}
	return m, nil
}

type treeBuilder struct {
	x  [][]float64
	hp Hyperparameters
}

func (b *treeBuilder) build(resid []float64, idx []int) Tree {
	t := Tree{}
	b.grow(&t, resid, idx, 0)
	return t
}

// grow appends the subtree rooted at the given sample set and returns its
// node index.
func (b *treeBuilder) grow(t *Tree, resid []float64, idx []int, depth int) int {
	self := len(t.Nodes)
	t.Nodes = append(t.Nodes, TreeNode{Left: -1, Right: -1})

	if depth < b.hp.MaxDepth && len(idx) >= 2*b.hp.MinChildWeight {
		if feat, thr, ok := b.bestSplit(resid, idx); ok {
			var left, right []int
			for _, i := range idx {
				if b.x[i][feat] <= thr {
					left = append(left, i)
				} else {
					right = append(right, i)
				}
			}
			l := b.grow(t, resid, left, depth+1)
			r := b.grow(t, resid, right, depth+1)
			t.Nodes[self].Feature = feat
			t.Nodes[self].Threshold = thr
			t.Nodes[self].Left = l
			t.Nodes[self].Right = r
			return self
		}
	}

	t.Nodes[self].Value = leafValue(resid, idx, b.hp.RegLambda)
	return self
}

func leafValue(resid []float64, idx []int, lambda float64) float64 {
	sum := 0.0
	for _, i := range idx {
		sum += resid[i]
	}
	return sum / (float64(len(idx)) + lambda)
}

// bestSplit scans every feature for the split with the largest regularized
// gain. Splits below Gamma, or leaving a child under MinChildWeight samples,
// are rejected.
func (b *treeBuilder) bestSplit(resid []float64, idx []int) (feature int, threshold float64, ok bool) {
	lambda := b.hp.RegLambda
	minChild := b.hp.MinChildWeight
	nTotal := float64(len(idx))

	sumTotal := 0.0
	for _, i := range idx {
		sumTotal += resid[i]
	}
	parentScore := sumTotal * sumTotal / (nTotal + lambda)

	bestGain := b.hp.Gamma
	order := make([]int, len(idx))
	for f := 0; f < len(b.x[idx[0]]); f++ {
		copy(order, idx)
		sort.Slice(order, func(a, c int) bool { return b.x[order[a]][f] < b.x[order[c]][f] })

		sumLeft := 0.0
		for pos := 0; pos < len(order)-1; pos++ {
			sumLeft += resid[order[pos]]
			nLeft := pos + 1
			if nLeft < minChild || len(order)-nLeft < minChild {
				continue
			}
			v, next := b.x[order[pos]][f], b.x[order[pos+1]][f]
			if v == next {
				continue
			}
			sumRight := sumTotal - sumLeft
			nRight := float64(len(order) - nLeft)
			gain := sumLeft*sumLeft/(float64(nLeft)+lambda) +
				sumRight*sumRight/(nRight+lambda) - parentScore
			if gain > bestGain {
				bestGain = gain
				feature = f
				threshold = (v + next) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}
