package queryparse

import "regexp"

var reAfterSpan = regexp.MustCompile(`\bafter\s+(?:\d+|[a-z-]+)\s+(?:minutes?|mins?|hours?|hrs?)\b`)

// intent classifies folded text. PREDICT beats VERIFY beats SHOW when several
// buckets hit. Predictive phrasing such as "where will" outranks a bare SHOW
// hit, and "after N minutes" only decides when no bucket hit at all
func (p *Parser) intent(folded string) Intent {
	hit := map[Intent]bool{}
	for _, m := range p.vocab.intents.All(folded) {
		hit[Intent(m.Label)] = true
	}
	predictive := len(p.vocab.predictive.All(folded)) > 0

	switch {
	case hit[IntentPredict]:
		return IntentPredict
	case hit[IntentVerify]:
		return IntentVerify
	case predictive:
		return IntentPredict
	case hit[IntentShow]:
		return IntentShow
	case reAfterSpan.MatchString(folded):
		return IntentPredict
	}
	return IntentNone
}
