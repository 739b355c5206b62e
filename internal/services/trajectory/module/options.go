package module

import (
	"vesselq/internal/core/trajectory"
	"vesselq/internal/core/verify"
	"vesselq/internal/platform/config"
	"vesselq/internal/services/trajectory/service"
)

// DefaultArtifactsDir is where model artifacts are looked for when unset
const DefaultArtifactsDir = "artifacts"

// Options configures the trajectory module
type Options struct {
	Service      service.Config
	ArtifactsDir string
}

// FromConfig reads CORE_PREDICT_* and CORE_VERIFY_*
func FromConfig(cfg config.Conf) Options {
	pc := cfg.Prefix("CORE_PREDICT_")
	vc := cfg.Prefix("CORE_VERIFY_")
	return Options{
		ArtifactsDir: pc.MayString("ARTIFACTS_DIR", DefaultArtifactsDir),
		Service: service.Config{
			Policy:         trajectory.Policy(pc.MayEnum("MODE", string(trajectory.PolicyAuto), trajectory.Policies...)),
			SequenceLength: pc.MayInt("SEQUENCE_LENGTH", service.DefaultSequenceLength),
			DefaultMinutes: pc.MayInt("DEFAULT_MINUTES", service.DefaultMinutes),
			JumpNM:         vc.MayFloat64("JUMP_NM", verify.DefaultJumpNM),
			CourseDeltaDeg: vc.MayFloat64("COURSE_DELTA_DEG", verify.DefaultCourseDeltaDeg),
			Window:         vc.MayInt("WINDOW", verify.DefaultWindow),
		},
	}
}
