package bind

import (
	"reflect"
	"regexp"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

var (
	reMMSI     = regexp.MustCompile(`^\d{9}$`)
	reIMO      = regexp.MustCompile(`^\d{7}$`)
	reCallSign = regexp.MustCompile(`^[A-Za-z0-9]{3,7}$`)
)

// digits renders string and integer fields the same way so tags work on both
func digits(fl validator.FieldLevel) (string, bool) {
	f := fl.Field()
	switch f.Kind() {
	case reflect.String:
		return f.String(), true
	case reflect.Int, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(f.Int(), 10), true
	case reflect.Uint, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(f.Uint(), 10), true
	default:
		return "", false
	}
}

func matcher(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s, ok := digits(fl)
		return ok && re.MatchString(s)
	}
}

// registerIdentifiers adds the mmsi, imo and callsign tags
func registerIdentifiers(v *validator.Validate, trans ut.Translator) {
	tags := []struct {
		tag  string
		re   *regexp.Regexp
		text string
	}{
		{"mmsi", reMMSI, "{0} must be a 9 digit MMSI"},
		{"imo", reIMO, "{0} must be a 7 digit IMO number"},
		{"callsign", reCallSign, "{0} must be 3 to 7 letters or digits"},
	}
	for _, t := range tags {
		_ = v.RegisterValidation(t.tag, matcher(t.re))
		translate(v, trans, t.tag, t.text)
	}
}
