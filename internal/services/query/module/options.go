package module

import (
	"vesselq/internal/platform/config"
	"vesselq/internal/services/query/service"
)

// FromConfig reads CORE_QUERY_* and CORE_PARSE_*
func FromConfig(cfg config.Conf) service.Config {
	return service.Config{
		LexiconTTL:     cfg.Prefix("CORE_QUERY_").MayDuration("LEXICON_TTL", service.DefaultLexiconTTL),
		AtAnchorsClock: cfg.Prefix("CORE_PARSE_").MayBool("AT_ANCHORS_CLOCK", false),
	}
}
