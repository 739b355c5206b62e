package trajectory

import (
	"math"

	perr "vesselq/internal/platform/errors"
)

// Scaler standardises features as (x-mean)/scale
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// PCA projects centred features onto its components, optionally whitened
type PCA struct {
	Mean              []float64   `json:"mean"`
	Components        [][]float64 `json:"components"`
	ExplainedVariance []float64   `json:"explained_variance,omitempty"`
	Whiten            bool        `json:"whiten"`
}

// Regressor maps a transformed feature vector to [lat, lon, sog, cog]
type Regressor interface {
	Predict(x []float64) ([]float64, error)
}

// Targets is the regressor output width
const Targets = 4

// Pipeline is the loaded learned model. A nil *Pipeline is valid and
// reports not loaded
type Pipeline struct {
	Version   string
	Width     int
	Scaler    *Scaler
	PCA       *PCA
	Regressor Regressor
}

// Loaded reports whether the pipeline can predict
func (p *Pipeline) Loaded() bool {
	return p != nil && p.Regressor != nil
}

func (s *Scaler) validate(width int) error {
	if len(s.Mean) != width || len(s.Scale) != width {
		return perr.Artifactsf("scaler width %d/%d, want %d", len(s.Mean), len(s.Scale), width)
	}
	return nil
}

func (s *Scaler) transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		sc := s.Scale[i]
		if sc == 0 {
			sc = 1
		}
		out[i] = (v - s.Mean[i]) / sc
	}
	return finite(out)
}

func (p *PCA) validate(width int) error {
	if len(p.Mean) != width {
		return perr.Artifactsf("pca mean width %d, want %d", len(p.Mean), width)
	}
	if len(p.Components) == 0 {
		return perr.Artifactsf("pca has no components")
	}
	for i, c := range p.Components {
		if len(c) != width {
			return perr.Artifactsf("pca component %d width %d, want %d", i, len(c), width)
		}
	}
	if p.Whiten && len(p.ExplainedVariance) != len(p.Components) {
		return perr.Artifactsf("pca whitening needs %d variances, have %d", len(p.Components), len(p.ExplainedVariance))
	}
	return nil
}

func (p *PCA) transform(x []float64) []float64 {
	out := make([]float64, len(p.Components))
	for k, comp := range p.Components {
		sum := 0.0
		for i, c := range comp {
			sum += (x[i] - p.Mean[i]) * c
		}
		if p.Whiten {
			sum /= math.Sqrt(p.ExplainedVariance[k])
		}
		out[k] = sum
	}
	return finite(out)
}

// Transform applies the scaler then PCA to a feature vector
func (p *Pipeline) Transform(x []float64) ([]float64, error) {
	if !p.Loaded() {
		return nil, ErrArtifactsUnavailable
	}
	if len(x) != p.Width {
		return nil, perr.Artifactsf("feature width %d, pipeline expects %d", len(x), p.Width)
	}
	out := finite(append([]float64(nil), x...))
	if p.Scaler != nil {
		out = p.Scaler.transform(out)
	}
	if p.PCA != nil {
		out = p.PCA.transform(out)
	}
	return out, nil
}

// Predict runs Transform and the regressor
func (p *Pipeline) Predict(x []float64) ([]float64, error) {
	z, err := p.Transform(x)
	if err != nil {
		return nil, err
	}
	y, err := p.Regressor.Predict(z)
	if err != nil {
		return nil, err
	}
	if len(y) != Targets {
		return nil, perr.Artifactsf("regressor returned %d targets, want %d", len(y), Targets)
	}
	return y, nil
}
