package trajectory

import (
	"context"
	"encoding/json"
	stderrs "errors"
	"io/fs"
	"os"
	"path/filepath"

	perr "vesselq/internal/platform/errors"
	"vesselq/internal/platform/logger"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the file LoadPipeline looks for in the artifact directory
const ManifestFile = "manifest.yaml"

// ErrArtifactsUnavailable marks a missing artifact directory or manifest.
// Callers treat it as a soft condition and predict without a pipeline
var ErrArtifactsUnavailable = perr.New(perr.ErrorCodeArtifacts, "model artifacts unavailable")

// Manifest names the artifacts of one trained pipeline, relative to its directory
type Manifest struct {
	Version   string `yaml:"version"`
	Width     int    `yaml:"width"`
	Scaler    string `yaml:"scaler"`
	PCA       string `yaml:"pca"`
	Regressor struct {
		Kind string `yaml:"kind"` // linear | xgboost
		Path string `yaml:"path"`
	} `yaml:"regressor"`
}

// Regressor kinds
const (
	KindLinear  = "linear"
	KindXGBoost = "xgboost"
)

// ParseManifest decodes and checks a manifest document
func ParseManifest(doc []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(doc, &m); err != nil {
		return m, perr.Wrap(err, perr.ErrorCodeArtifacts, "parse manifest")
	}
	if m.Width == 0 {
		m.Width = FeatureWidth
	}
	if m.Width != FeatureWidth {
		return m, perr.Artifactsf("manifest width %d, features are %d wide", m.Width, FeatureWidth)
	}
	switch m.Regressor.Kind {
	case KindLinear, KindXGBoost:
	default:
		return m, perr.Artifactsf("unknown regressor kind %q", m.Regressor.Kind)
	}
	if m.Regressor.Path == "" {
		return m, perr.Artifactsf("manifest names no regressor file")
	}
	return m, nil
}

// LoadPipeline reads dir/manifest.yaml and the JSON artifacts it names.
// The artifacts are decoded concurrently. A missing directory or manifest
// returns an error wrapping ErrArtifactsUnavailable
func LoadPipeline(ctx context.Context, dir string) (*Pipeline, error) {
	log := logger.Named("trajectory")

	doc, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if stderrs.Is(err, fs.ErrNotExist) {
		log.Warn().Str("dir", dir).Msg("no model artifacts; learned predictions use the fallback")
		return nil, perr.Wrapf(ErrArtifactsUnavailable, perr.ErrorCodeArtifacts, "no manifest in %s", dir)
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeArtifacts, "read manifest")
	}
	m, err := ParseManifest(doc)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{Version: m.Version, Width: m.Width}
	var (
		lin *Linear
		ens *Ensemble
	)

	g, gctx := errgroup.WithContext(ctx)
	if m.Scaler != "" {
		p.Scaler = &Scaler{}
		g.Go(func() error { return readJSON(gctx, dir, m.Scaler, p.Scaler) })
	}
	if m.PCA != "" {
		p.PCA = &PCA{}
		g.Go(func() error { return readJSON(gctx, dir, m.PCA, p.PCA) })
	}
	g.Go(func() error {
		switch m.Regressor.Kind {
		case KindLinear:
			lin = &Linear{}
			return readJSON(gctx, dir, m.Regressor.Path, lin)
		default:
			ens = &Ensemble{}
			return readJSON(gctx, dir, m.Regressor.Path, ens)
		}
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if p.Scaler != nil {
		if err := p.Scaler.validate(m.Width); err != nil {
			return nil, err
		}
	}
	in := m.Width
	if p.PCA != nil {
		if err := p.PCA.validate(m.Width); err != nil {
			return nil, err
		}
		in = len(p.PCA.Components)
	}
	if lin != nil {
		if err := lin.validate(in); err != nil {
			return nil, err
		}
		p.Regressor = lin
	} else {
		if err := ens.compile(in); err != nil {
			return nil, err
		}
		p.Regressor = ens
	}

	log.Info().Str("dir", dir).Str("version", m.Version).Str("regressor", m.Regressor.Kind).
		Int("inputs", in).Msg("model artifacts loaded")
	return p, nil
}

func readJSON(ctx context.Context, dir, name string, into any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeArtifacts, "read %s", name)
	}
	if err := json.Unmarshal(b, into); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeArtifacts, "decode %s", name)
	}
	return nil
}
