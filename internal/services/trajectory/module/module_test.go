package module

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vesselq/internal/core/track"
	"vesselq/internal/core/trajectory"
	modkit "vesselq/internal/modkit"
	"vesselq/internal/modkit/module"
	"vesselq/internal/platform/config"
	kit "vesselq/internal/platform/testkit"
	"vesselq/internal/services/trajectory/domain"
	vdomain "vesselq/internal/services/vessels/domain"
)

type stubVessels struct{}

func (stubVessels) Resolve(context.Context, vdomain.ResolveInput) vdomain.Resolution {
	return vdomain.NoData("GHOST")
}

func (stubVessels) Track(context.Context, vdomain.ResolveInput, vdomain.TrackQuery) (track.Track, error) {
	return nil, nil
}

func (stubVessels) Window(context.Context, vdomain.Identity, time.Time, time.Duration) (track.Track, error) {
	return nil, nil
}

func (stubVessels) Trailing(context.Context, vdomain.Identity, time.Time, int) (track.Track, error) {
	return nil, nil
}

func vesselPorts() modkit.Option {
	return modkit.WithPorts(vdomain.Ports{Resolver: stubVessels{}, Tracks: stubVessels{}})
}

func TestNew_RequiresVesselPorts(t *testing.T) {
	kit.MustPanic(t, func() { New(modkit.NewDeps(config.New(), nil)) })
}

func TestNew_ExposesPorts(t *testing.T) {
	t.Setenv("CORE_PREDICT_ARTIFACTS_DIR", filepath.Join(t.TempDir(), "missing"))
	m := New(modkit.NewDeps(config.New(), nil), vesselPorts())

	if m.Name() != "trajectory" {
		t.Fatalf("name = %q", m.Name())
	}
	if _, ok := module.PortsOf[domain.Forecaster](m); !ok {
		t.Fatal("forecaster port missing")
	}
	if _, ok := module.PortsOf[domain.Checker](m); !ok {
		t.Fatal("checker port missing")
	}
}

func TestPipeline_SoftFailures(t *testing.T) {
	kit.Serial(t)
	if p := pipeline(""); p != nil {
		t.Fatal("empty dir should skip loading")
	}
	if p := pipeline(filepath.Join(t.TempDir(), "missing")); p != nil {
		t.Fatal("missing dir should yield no pipeline")
	}

	bad := t.TempDir()
	if err := os.WriteFile(filepath.Join(bad, trajectory.ManifestFile), []byte("version: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if p := pipeline(bad); p != nil {
		t.Fatal("malformed manifest should yield no pipeline")
	}

	want := &trajectory.Pipeline{Version: "v1"}
	kit.Swap(t, &loadPipeline, func(context.Context, string) (*trajectory.Pipeline, error) { return want, nil })
	if p := pipeline("anywhere"); p != want {
		t.Fatalf("pipeline = %+v", p)
	}
	kit.Swap(t, &loadPipeline, func(context.Context, string) (*trajectory.Pipeline, error) {
		return nil, errors.New("boom")
	})
	if p := pipeline("anywhere"); p != nil {
		t.Fatal("load error should yield no pipeline")
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_PREDICT_MODE", "Dead_Reckoning")
	t.Setenv("CORE_PREDICT_DEFAULT_MINUTES", "45")
	t.Setenv("CORE_VERIFY_JUMP_NM", "2.5")
	t.Setenv("CORE_VERIFY_WINDOW", "6")

	o := FromConfig(config.New())
	if o.Service.Policy != trajectory.PolicyDeadReckoning || o.Service.DefaultMinutes != 45 {
		t.Fatalf("predict config = %+v", o.Service)
	}
	if o.Service.JumpNM != 2.5 || o.Service.Window != 6 || o.ArtifactsDir != DefaultArtifactsDir {
		t.Fatalf("verify config = %+v %q", o.Service, o.ArtifactsDir)
	}

	t.Setenv("CORE_PREDICT_MODE", "oracle")
	kit.MustPanic(t, func() { FromConfig(config.New()) })
}
