package trajectory

import (
	"math"
	"strconv"
	"strings"

	perr "vesselq/internal/platform/errors"
)

// Linear is y = coef·x + intercept, one coefficient row per target
type Linear struct {
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

func (l *Linear) validate(width int) error {
	if len(l.Coef) != Targets || len(l.Intercept) != Targets {
		return perr.Artifactsf("linear model has %d rows and %d intercepts, want %d", len(l.Coef), len(l.Intercept), Targets)
	}
	for i, row := range l.Coef {
		if len(row) != width {
			return perr.Artifactsf("linear row %d width %d, want %d", i, len(row), width)
		}
	}
	return nil
}

// Predict implements Regressor
func (l *Linear) Predict(x []float64) ([]float64, error) {
	out := make([]float64, Targets)
	for t, row := range l.Coef {
		if len(row) != len(x) {
			return nil, perr.Artifactsf("linear input width %d, want %d", len(x), len(row))
		}
		sum := l.Intercept[t]
		for i, c := range row {
			sum += c * x[i]
		}
		out[t] = sum
	}
	return out, nil
}

// TreeNode is one node of an XGBoost JSON dump. Leaves carry Leaf; splits
// send x[f] < SplitCondition to Yes and everything else to No
type TreeNode struct {
	NodeID         int         `json:"nodeid"`
	Split          string      `json:"split,omitempty"`
	SplitCondition float64     `json:"split_condition,omitempty"`
	Yes            int         `json:"yes,omitempty"`
	No             int         `json:"no,omitempty"`
	Missing        int         `json:"missing,omitempty"`
	Leaf           *float64    `json:"leaf,omitempty"`
	Children       []*TreeNode `json:"children,omitempty"`
}

// Ensemble is a gradient boosted model with one booster per target.
// BaseScores, when present, overrides BaseScore per target
type Ensemble struct {
	BaseScore  float64       `json:"base_score"`
	BaseScores []float64     `json:"base_scores,omitempty"`
	Boosters   [][]*TreeNode `json:"boosters"`

	compiled [][]flatTree
}

type flatNode struct {
	leaf    bool
	value   float64
	feature int
	cond    float64
	yes     int
	no      int
	missing int
}

type flatTree map[int]flatNode

func (e *Ensemble) compile(width int) error {
	if len(e.Boosters) != Targets {
		return perr.Artifactsf("ensemble has %d boosters, want %d", len(e.Boosters), Targets)
	}
	if len(e.BaseScores) != 0 && len(e.BaseScores) != Targets {
		return perr.Artifactsf("ensemble has %d base scores, want %d", len(e.BaseScores), Targets)
	}
	e.compiled = make([][]flatTree, Targets)
	for t, trees := range e.Boosters {
		for i, root := range trees {
			ft := flatTree{}
			if err := flatten(root, width, ft); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeArtifacts, "booster %d tree %d", t, i)
			}
			if _, ok := ft[0]; !ok {
				return perr.Artifactsf("booster %d tree %d has no root", t, i)
			}
			e.compiled[t] = append(e.compiled[t], ft)
		}
	}
	return nil
}

func flatten(n *TreeNode, width int, into flatTree) error {
	if n == nil {
		return perr.Artifactsf("nil node")
	}
	if _, dup := into[n.NodeID]; dup {
		return perr.Artifactsf("duplicate node %d", n.NodeID)
	}
	if n.Leaf != nil {
		into[n.NodeID] = flatNode{leaf: true, value: *n.Leaf}
		return nil
	}
	f, err := splitFeature(n.Split, width)
	if err != nil {
		return err
	}
	into[n.NodeID] = flatNode{feature: f, cond: n.SplitCondition, yes: n.Yes, no: n.No, missing: n.Missing}
	for _, c := range n.Children {
		if err := flatten(c, width, into); err != nil {
			return err
		}
	}
	return nil
}

// splitFeature reads the "f12" feature naming used by unnamed dumps
func splitFeature(s string, width int) (int, error) {
	if !strings.HasPrefix(s, "f") {
		return 0, perr.Artifactsf("unsupported split feature %q", s)
	}
	f, err := strconv.Atoi(s[1:])
	if err != nil || f < 0 || f >= width {
		return 0, perr.Artifactsf("split feature %q out of range 0..%d", s, width-1)
	}
	return f, nil
}

func (t flatTree) eval(x []float64) (float64, error) {
	id := 0
	for steps := 0; steps <= len(t); steps++ {
		n, ok := t[id]
		if !ok {
			return 0, perr.Artifactsf("dangling node %d", id)
		}
		if n.leaf {
			return n.value, nil
		}
		v := x[n.feature]
		switch {
		case math.IsNaN(v):
			id = n.missing
		case v < n.cond:
			id = n.yes
		default:
			id = n.no
		}
	}
	return 0, perr.Artifactsf("tree walk did not terminate")
}

// Predict implements Regressor
func (e *Ensemble) Predict(x []float64) ([]float64, error) {
	if len(e.compiled) != Targets {
		return nil, perr.Artifactsf("ensemble not compiled")
	}
	out := make([]float64, Targets)
	for t, trees := range e.compiled {
		sum := e.BaseScore
		if len(e.BaseScores) == Targets {
			sum = e.BaseScores[t]
		}
		for _, tr := range trees {
			v, err := tr.eval(x)
			if err != nil {
				return nil, err
			}
			sum += v
		}
		out[t] = sum
	}
	return out, nil
}
