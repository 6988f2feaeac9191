package model

import (
	"errors"
	"fmt"
	"slices"
)

// TreeNode is one node of a flattened binary tree. Children always come
// after their parent, which rules out cycles.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx" yaml:"feature_idx"`
	Threshold  float64 `json:"threshold" yaml:"threshold"`
	LeftChild  int     `json:"left_child" yaml:"left_child"`
	RightChild int     `json:"right_child" yaml:"right_child"`
	ClassLabel int     `json:"class_label" yaml:"class_label"`
	IsLeaf     bool    `json:"is_leaf" yaml:"is_leaf"`
}

type treeArtifact struct {
	NumFeatures int        `json:"n_features" yaml:"n_features"`
	Nodes       []TreeNode `json:"nodes" yaml:"nodes"`
}

// DecisionTree walks from the root, going left when x[feature] <= threshold,
// and returns the label of the leaf it reaches.
type DecisionTree struct {
	info  Info
	nodes []TreeNode
}

func decodeDecisionTree(h header, data []byte, unmarshal unmarshalFunc) (Predictor, error) {
	var a treeArtifact

	if err := unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}

	return &DecisionTree{
		info: Info{
			Type:        h.Type,
			Name:        h.Name,
			Version:     h.Version,
			NumFeatures: a.NumFeatures,
		},
		nodes: slices.Clone(a.Nodes),
	}, nil
}

func (a treeArtifact) validate() error {
	if a.NumFeatures <= 0 {
		return fmt.Errorf("n_features must be positive, got %d", a.NumFeatures)
	}

	if len(a.Nodes) == 0 {
		return errors.New("tree has no nodes")
	}

	for i, node := range a.Nodes {
		if node.IsLeaf {
			if node.ClassLabel != 0 && node.ClassLabel != 1 {
				return fmt.Errorf("leaf %d has non binary label %d", i, node.ClassLabel)
			}

			continue
		}

		if node.FeatureIdx < 0 || node.FeatureIdx >= a.NumFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, node.FeatureIdx, a.NumFeatures)
		}

		for _, child := range []int{node.LeftChild, node.RightChild} {
			if child <= i || child >= len(a.Nodes) {
				return fmt.Errorf("node %d has invalid child %d", i, child)
			}
		}
	}

	return nil
}

// Predict implements Predictor.
func (t *DecisionTree) Predict(features []float64) (int, error) {
	if len(features) != t.info.NumFeatures {
		return 0, fmt.Errorf(
			"%w: X has %d features, but the model is expecting %d features as input",
			ErrFeatureCount, len(features), t.info.NumFeatures,
		)
	}

	idx := 0

	for {
		node := t.nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nil
		}

		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

func (t *DecisionTree) NumFeatures() int {
	return t.info.NumFeatures
}

func (t *DecisionTree) Info() Info {
	return t.info
}
