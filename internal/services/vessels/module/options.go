package module

import (
	"vesselq/internal/core/similarity"
	"vesselq/internal/core/track"
	"vesselq/internal/platform/config"
	"vesselq/internal/services/vessels/service"
)

// FromConfig reads CORE_RESOLVE_* into the service config
func FromConfig(cfg config.Conf) service.Config {
	rc := cfg.Prefix("CORE_RESOLVE_")
	return service.Config{
		FuzzyFloor:  rc.MayUnit("FUZZY_FLOOR", similarity.DefaultFloor),
		Tolerance:   rc.MayDuration("TOLERANCE", service.DefaultTolerance),
		TrackLimit:  rc.MayInt("TRACK_LIMIT", track.DisplayLimit),
		PrefixLimit: rc.MayInt("PREFIX_LIMIT", service.DefaultPrefixLimit),
		Window:      rc.MayDuration("WINDOW", service.DefaultWindow),
		Candidates:  rc.MayInt("CANDIDATES", service.DefaultCandidates),
	}
}
