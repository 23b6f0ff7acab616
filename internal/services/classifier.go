package services

import (
	"errors"
	"fmt"
	"math"
)

var ErrFeatureWidth = errors.New("feature width mismatch")

// Classifier scores a feature vector into a probability per class. Classes
// returns the external class id for each probability position.
type Classifier interface {
	PredictProba(x []float64) ([]float64, error)
	Classes() []int
}

// LinearClassifier is a multinomial logistic regression. A single coefficient
// row with two classes is the binary form and is scored with a sigmoid.
type LinearClassifier struct {
	classes   []int
	coef      [][]float64
	intercept []float64
	nFeatures int
}

func NewLinearClassifier(classes []int, coef [][]float64, intercept []float64) (*LinearClassifier, error) {
	if len(classes) < 2 {
		return nil, fmt.Errorf("linear classifier needs at least 2 classes, got %d", len(classes))
	}
	binary := len(classes) == 2 && len(coef) == 1
	if !binary && len(coef) != len(classes) {
		return nil, fmt.Errorf("linear classifier has %d coefficient rows for %d classes", len(coef), len(classes))
	}
	if len(intercept) != len(coef) {
		return nil, fmt.Errorf("linear classifier has %d intercepts for %d coefficient rows", len(intercept), len(coef))
	}

	nFeatures := len(coef[0])
	for i, row := range coef {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("coefficient row %d has width %d, want %d", i, len(row), nFeatures)
		}
	}

	return &LinearClassifier{
		classes:   classes,
		coef:      coef,
		intercept: intercept,
		nFeatures: nFeatures,
	}, nil
}

func (c *LinearClassifier) Classes() []int {
	return c.classes
}

func (c *LinearClassifier) PredictProba(x []float64) ([]float64, error) {
	if len(x) != c.nFeatures {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFeatureWidth, len(x), c.nFeatures)
	}

	scores := make([]float64, len(c.coef))
	for k, row := range c.coef {
		z := c.intercept[k]
		for j, w := range row {
			z += w * x[j]
		}
		scores[k] = z
	}

	if len(c.coef) == 1 {
		p := 1 / (1 + math.Exp(-scores[0]))
		return []float64{1 - p, p}, nil
	}

	return softmax(scores), nil
}

func softmax(z []float64) []float64 {
	peak := math.Inf(-1)
	for _, v := range z {
		if v > peak {
			peak = v
		}
	}

	out := make([]float64, len(z))
	var sum float64
	for i, v := range z {
		out[i] = math.Exp(v - peak)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// DecisionTree is a fitted tree in flat array form. Node i is a leaf when
// ChildrenLeft[i] is -1; otherwise samples with x[Feature[i]] <= Threshold[i]
// go left. Value[i] holds the class weights at node i.
type DecisionTree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

func (t *DecisionTree) validate(nFeatures, nClasses int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return errors.New("tree has no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return errors.New("tree node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		if len(t.Value[i]) != nClasses {
			return fmt.Errorf("node %d has %d class weights, want %d", i, len(t.Value[i]), nClasses)
		}
		if t.ChildrenLeft[i] == -1 {
			continue
		}
		if t.ChildrenLeft[i] <= i || t.ChildrenLeft[i] >= n || t.ChildrenRight[i] <= i || t.ChildrenRight[i] >= n {
			return fmt.Errorf("node %d has children out of range", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, t.Feature[i], nFeatures)
		}
	}
	return nil
}

func (t *DecisionTree) leaf(x []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] != -1 {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

// ForestClassifier averages the normalised leaf distributions of its trees.
type ForestClassifier struct {
	classes   []int
	trees     []DecisionTree
	nFeatures int
}

func NewForestClassifier(classes []int, nFeatures int, trees []DecisionTree) (*ForestClassifier, error) {
	if len(classes) == 0 {
		return nil, errors.New("forest classifier has no classes")
	}
	if len(trees) == 0 {
		return nil, errors.New("forest classifier has no trees")
	}
	if nFeatures <= 0 {
		return nil, errors.New("forest classifier has no features")
	}
	for i := range trees {
		if err := trees[i].validate(nFeatures, len(classes)); err != nil {
			return nil, fmt.Errorf("invalid tree %d: %w", i, err)
		}
	}

	return &ForestClassifier{
		classes:   classes,
		trees:     trees,
		nFeatures: nFeatures,
	}, nil
}

func (c *ForestClassifier) Classes() []int {
	return c.classes
}

func (c *ForestClassifier) PredictProba(x []float64) ([]float64, error) {
	if len(x) != c.nFeatures {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFeatureWidth, len(x), c.nFeatures)
	}

	proba := make([]float64, len(c.classes))
	for i := range c.trees {
		weights := c.trees[i].leaf(x)
		var total float64
		for _, w := range weights {
			total += w
		}
		if total == 0 {
			continue
		}
		for k, w := range weights {
			proba[k] += w / total
		}
	}

	for k := range proba {
		proba[k] /= float64(len(c.trees))
	}
	return proba, nil
}
