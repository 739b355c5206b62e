package queryparse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// tod groups: 1 hour, 2 min, 3 sec, 4 am/pm | 5 hour, 6 min, 7 sec | 8 noon/midnight
const todPattern = `(?:(\d{1,2})(?::(\d{2}))?(?::(\d{2}))?\s*(am\b|pm\b|a\.m\.|p\.m\.)|(\d{1,2}):(\d{2})(?::(\d{2}))?|\b(noon|midnight)\b)`

const ordinal = `(?:st|nd|rd|th)?`

// timeRules are compiled per vocabulary since months, units and number
// words come from the lexicon
type timeRules struct {
	iso, slash         *regexp.Regexp
	monDayYear         *regexp.Regexp
	dayMonYear         *regexp.Regexp
	monDay, dayMon     *regexp.Regexp
	tailTOD, leadTOD   *regexp.Regexp
	tod                *regexp.Regexp
	atClock            *regexp.Regexp
	relative, ago, dur *regexp.Regexp
	horizon            *regexp.Regexp
}

func alternation(words []string) string { return "(?:" + alts(words) + ")" }

// alts quotes words and joins them longest first so leftmost-first
// matching prefers "minutes" over "min"
func alts(words []string) string {
	ws := append([]string(nil), words...)
	sort.Slice(ws, func(i, j int) bool {
		if len(ws[i]) != len(ws[j]) {
			return len(ws[i]) > len(ws[j])
		}
		return ws[i] < ws[j]
	})
	for i := range ws {
		ws[i] = regexp.QuoteMeta(ws[i])
	}
	return strings.Join(ws, "|")
}

func keys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func compileTimeRules(v *Vocab) *timeRules {
	mon := "(" + alternation(keys(v.months)) + `)\.?`
	unit := "(" + alternation(keys(v.unitMinutes)) + ")"
	hours, minutes := []string{}, []string{}
	for w, per := range v.unitMinutes {
		if per == 60 {
			hours = append(hours, w)
		} else {
			minutes = append(minutes, w)
		}
	}
	num := `(\d{1,4})`
	word := `(\d{1,4}|` + alts(keys(v.numbers)) + ")"
	compound := `(?:\s+(?:and\s+)?` + num + `\s*` + unit + `)?`

	return &timeRules{
		iso:        regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})`),
		slash:      regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`),
		monDayYear: regexp.MustCompile(`\b` + mon + `\s+(\d{1,2})` + ordinal + `,?\s+(\d{4})\b`),
		dayMonYear: regexp.MustCompile(`\b(\d{1,2})` + ordinal + `\s+(?:of\s+)?` + mon + `,?\s+(\d{4})\b`),
		monDay:     regexp.MustCompile(`\b` + mon + `\s+(\d{1,2})` + ordinal + `\b`),
		dayMon:     regexp.MustCompile(`\b(\d{1,2})` + ordinal + `\s+(?:of\s+)?` + mon + `(?:\s|$|[,.?!])`),
		tailTOD:    regexp.MustCompile(`^(?:t|\s*,?\s*(?:at\s+)?)` + todPattern),
		leadTOD:    regexp.MustCompile(`\b` + todPattern + `\s*,?\s*(?:on\s+)?$`),
		tod:        regexp.MustCompile(`\b` + todPattern),
		atClock: regexp.MustCompile(`\bat\s+(\d{1,2})\s*` + alternation(hours) +
			`(?:\s+(?:and\s+)?(\d{1,2})\s*` + alternation(minutes) + `)?\b`),
		relative: regexp.MustCompile(`\b(?:in|after|within)\s+` + num + `\s*` + unit + compound + `\b`),
		ago:      regexp.MustCompile(`\b` + word + `\s*` + unit + compound + `\s+ago\b`),
		dur: regexp.MustCompile(`\b(?:for\s+(?:the\s+)?(?:(?:last|past|next)\s+)?)?` +
			num + `\s*` + unit + compound + `\b`),
		horizon: regexp.MustCompile(`\b(?:after|in)\s+` + word + `\s+` + unit + `\b`),
	}
}

type timeResult struct {
	expr string
	kind TimeKind
	end  *time.Time
	dur  *int
}

func at(t time.Time) *time.Time { return &t }
func minutesPtr(n int) *int     { return &n }

// resolveTime applies the time rules in priority order; the first hit wins
func (p *Parser) resolveTime(folded string, now time.Time) timeResult {
	rules := p.vocab.rules
	for _, step := range []func(string, time.Time) (timeResult, bool){
		p.absolute,
		p.timeOfDay,
		func(s string, now time.Time) (timeResult, bool) { return p.span(rules.relative, s, now, TimeRelative, 1) },
		func(s string, now time.Time) (timeResult, bool) { return p.span(rules.ago, s, now, TimeAgo, -1) },
		p.duration,
		p.monthDay,
		func(s string, now time.Time) (timeResult, bool) {
			return p.span(rules.horizon, s, now, TimeHorizonFB, 1)
		},
	} {
		if r, ok := step(folded, now); ok {
			return r
		}
	}
	return timeResult{kind: TimeNone}
}

// absolute handles full dates with an optional time of day on either side
func (p *Parser) absolute(s string, now time.Time) (timeResult, bool) {
	r := p.vocab.rules
	type reader func(m []string) (y, mo, d int, ok bool)

	forms := []struct {
		re       *regexp.Regexp
		read     reader
		needTime bool
	}{
		{r.iso, func(m []string) (int, int, int, bool) { return atoi(m[1]), atoi(m[2]), atoi(m[3]), true }, false},
		{r.slash, func(m []string) (int, int, int, bool) {
			a, b := atoi(m[1]), atoi(m[2])
			if a > 12 {
				a, b = b, a
			}
			return atoi(m[3]), a, b, true
		}, false},
		{r.monDayYear, func(m []string) (int, int, int, bool) {
			mo, ok := p.month(m[1])
			return atoi(m[3]), mo, atoi(m[2]), ok
		}, false},
		{r.dayMonYear, func(m []string) (int, int, int, bool) {
			mo, ok := p.month(m[2])
			return atoi(m[3]), mo, atoi(m[1]), ok
		}, false},
		{r.monDay, func(m []string) (int, int, int, bool) {
			mo, ok := p.month(m[1])
			return now.Year(), mo, atoi(m[2]), ok
		}, true},
		{r.dayMon, func(m []string) (int, int, int, bool) {
			mo, ok := p.month(m[2])
			return now.Year(), mo, atoi(m[1]), ok
		}, true},
	}

	for _, f := range forms {
		for _, idx := range f.re.FindAllStringSubmatchIndex(s, -1) {
			m := submatches(s, idx)
			y, mo, d, ok := f.read(m)
			if !ok {
				continue
			}
			day, ok := date(y, mo, d)
			if !ok {
				continue
			}
			end := idx[1]
			if f.re == r.dayMon && end > 0 && strings.ContainsAny(s[end-1:end], " ,.?!") {
				end--
			}
			start := idx[0]
			h, mi, sec, tlen, hasTime := p.tail(s[end:])
			if !hasTime {
				var lstart int
				if h, mi, sec, lstart, hasTime = p.lead(s[:start]); hasTime {
					start = lstart
				}
			}
			if f.needTime && !hasTime {
				continue
			}
			t := day.Add(time.Duration(h)*time.Hour + time.Duration(mi)*time.Minute + time.Duration(sec)*time.Second)
			return timeResult{expr: strings.TrimSpace(s[start : end+tlen]), kind: TimeAbsolute, end: at(t)}, true
		}
	}
	return timeResult{}, false
}

// tail reads a time of day directly after a date
func (p *Parser) tail(rest string) (h, m, sec, n int, ok bool) {
	idx := p.vocab.rules.tailTOD.FindStringSubmatchIndex(rest)
	if idx == nil {
		return 0, 0, 0, 0, false
	}
	h, m, sec, ok = clock(submatches(rest, idx))
	if !ok {
		return 0, 0, 0, 0, false
	}
	return h, m, sec, idx[1], true
}

// lead reads a time of day directly before a date, as in "18:25 on 2024-01-05"
func (p *Parser) lead(before string) (h, m, sec, start int, ok bool) {
	idx := p.vocab.rules.leadTOD.FindStringSubmatchIndex(before)
	if idx == nil {
		return 0, 0, 0, 0, false
	}
	h, m, sec, ok = clock(submatches(before, idx))
	if !ok {
		return 0, 0, 0, 0, false
	}
	return h, m, sec, idx[0], true
}

// timeOfDay attaches a clock time to today's date
func (p *Parser) timeOfDay(s string, now time.Time) (timeResult, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, idx := range p.vocab.rules.tod.FindAllStringSubmatchIndex(s, -1) {
		if h, m, sec, ok := clock(submatches(s, idx)); ok {
			t := today.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second)
			return timeResult{expr: strings.TrimSpace(s[idx[0]:idx[1]]), kind: TimeOfDay, end: at(t)}, true
		}
	}
	if !p.opts.AtAnchorsClock {
		return timeResult{}, false
	}
	if m := p.vocab.rules.atClock.FindStringSubmatch(s); m != nil {
		h, mi := atoi(m[1]), atoi(m[2])
		if h < 24 && mi < 60 {
			t := today.Add(time.Duration(h)*time.Hour + time.Duration(mi)*time.Minute)
			return timeResult{expr: m[0], kind: TimeOfDay, end: at(t)}, true
		}
	}
	return timeResult{}, false
}

// span handles "<anchor> N unit [M unit]" phrases relative to now
func (p *Parser) span(re *regexp.Regexp, s string, now time.Time, kind TimeKind, sign int) (timeResult, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return timeResult{}, false
	}
	total, ok := p.amount(m[1:])
	if !ok {
		return timeResult{}, false
	}
	total *= sign
	return timeResult{
		expr: m[0],
		kind: kind,
		end:  at(now.Add(time.Duration(total) * time.Minute)),
		dur:  minutesPtr(total),
	}, true
}

// duration reads "for the last N unit" and unanchored "N hours M minutes"; no end time
func (p *Parser) duration(s string, _ time.Time) (timeResult, bool) {
	m := p.vocab.rules.dur.FindStringSubmatch(s)
	if m == nil {
		return timeResult{}, false
	}
	total, ok := p.amount(m[1:])
	if !ok {
		return timeResult{}, false
	}
	return timeResult{expr: m[0], kind: TimeDuration, dur: minutesPtr(total)}, true
}

// monthDay is a bare "march 5" or "5th of march" at midnight this year
func (p *Parser) monthDay(s string, now time.Time) (timeResult, bool) {
	r := p.vocab.rules
	if m := r.monDay.FindStringSubmatch(s); m != nil {
		mo, ok := p.month(m[1])
		d := atoi(m[2])
		if day, valid := date(now.Year(), mo, d); ok && valid {
			return timeResult{expr: m[0], kind: TimeMonthDay, end: at(day)}, true
		}
	}
	if m := r.dayMon.FindStringSubmatch(s); m != nil {
		mo, ok := p.month(m[2])
		d := atoi(m[1])
		if day, valid := date(now.Year(), mo, d); ok && valid {
			return timeResult{expr: strings.TrimRight(m[0], " ,.?!"), kind: TimeMonthDay, end: at(day)}, true
		}
	}
	return timeResult{}, false
}

// horizon is the raw "(after|in) N unit" span, number words allowed
func (p *Parser) horizon(s string) (string, bool) {
	m := p.vocab.rules.horizon.FindString(s)
	return m, m != ""
}

// amount sums "N unit [M unit]" capture pairs into minutes
func (p *Parser) amount(groups []string) (int, bool) {
	total, seen := 0, false
	for i := 0; i+1 < len(groups); i += 2 {
		if groups[i] == "" {
			continue
		}
		n, ok := p.vocab.number(groups[i])
		if !ok {
			return 0, false
		}
		mins, ok := p.vocab.minutes(n, groups[i+1])
		if !ok {
			return 0, false
		}
		total += mins
		seen = true
	}
	return total, seen
}

func (p *Parser) month(w string) (int, bool) {
	m, ok := p.vocab.months[strings.TrimSuffix(w, ".")]
	return m, ok
}

// clock validates tod captures and returns a 24 hour clock
func clock(m []string) (h, mi, sec int, ok bool) {
	switch {
	case len(m) > 8 && m[8] != "":
		if m[8] == "noon" {
			return 12, 0, 0, true
		}
		return 0, 0, 0, true
	case m[4] != "":
		h, mi, sec = atoi(m[1]), atoi(m[2]), atoi(m[3])
		if h < 1 || h > 12 {
			return 0, 0, 0, false
		}
		pm := strings.HasPrefix(m[4], "p")
		switch {
		case pm && h < 12:
			h += 12
		case !pm && h == 12:
			h = 0
		}
	case m[5] != "":
		h, mi, sec = atoi(m[5]), atoi(m[6]), atoi(m[7])
	default:
		return 0, 0, 0, false
	}
	if h > 23 || mi > 59 || sec > 59 {
		return 0, 0, 0, false
	}
	return h, mi, sec, true
}

// date builds a UTC midnight, rejecting overflow such as february 31
func date(y, mo, d int) (time.Time, bool) {
	if mo < 1 || mo > 12 || d < 1 || d > 31 || y < 1900 || y > 2200 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != mo {
		return time.Time{}, false
	}
	return t, true
}

// atoi reads a regexp digit capture; empty captures are 0
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// submatches turns an index slice into strings; unmatched groups are ""
func submatches(s string, idx []int) []string {
	out := make([]string, len(idx)/2)
	for i := range out {
		if a, b := idx[2*i], idx[2*i+1]; a >= 0 {
			out[i] = s[a:b]
		}
	}
	return out
}
