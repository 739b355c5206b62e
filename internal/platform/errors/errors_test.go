package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeInsufficientData, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeArtifacts, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrorCodeInsufficientData.String() != "insufficient_data" {
		t.Fatalf("got %q", ErrorCodeInsufficientData.String())
	}
	if ErrorCode(500).String() != "code(500)" {
		t.Fatalf("got %q", ErrorCode(500).String())
	}
}

func TestError_Rendering(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	src := stderrs.New("root")
	e := Wrapf(src, ErrorCodeDB, "load track %s", "BRAVA")
	if got := e.Error(); got != "load track BRAVA: root" {
		t.Fatalf("Error() = %q", got)
	}
	withOp := WithOp(e, "resolver.exact")
	if got := withOp.Error(); got != "resolver.exact: load track BRAVA: root" {
		t.Fatalf("Error() with op = %q", got)
	}
	if stderrs.Unwrap(e) != src {
		t.Fatal("Unwrap lost cause")
	}
}

func TestCopyOnWrite(t *testing.T) {
	base := InvalidArgf("minutes must be positive")
	f := WithField(base, "minutes")
	if fe, _ := As(f); fe.Field() != "minutes" {
		t.Fatalf("field = %q", fe.Field())
	}
	if be, _ := As(base); be.Field() != "" {
		t.Fatal("WithField mutated the original")
	}
	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign || WithOp(foreign, "o") != foreign {
		t.Fatal("foreign errors should pass through")
	}
}

func TestWire(t *testing.T) {
	src := stderrs.New("root")
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", w)
	}
	if w := WireFrom(src); w.Code != ErrorCodeUnknown || w.Message != "root" {
		t.Fatalf("WireFrom(foreign) = %+v", w)
	}
	w := WireFrom(WithField(Wrap(src, ErrorCodeValidation, "bad mmsi"), "mmsi"))
	if w.Code != ErrorCodeValidation || w.Message != "bad mmsi" || w.Field != "mmsi" {
		t.Fatalf("WireFrom(ours) = %+v", w)
	}
	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) = %d", st)
	}
	if st, wire := HTTP(ErrNotFound); st != http.StatusNotFound || wire.Message != "not found" {
		t.Fatalf("HTTP(ErrNotFound) = %d %+v", st, wire)
	}
}

func TestSugar(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("x"), ErrorCodeNotFound},
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{DBf("x"), ErrorCodeDB},
		{JSONErrf("x"), ErrorCodeJSON},
		{PanicErrf("x"), ErrorCodePanic},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{Insufficientf("x"), ErrorCodeInsufficientData},
		{Artifactsf("x"), ErrorCodeArtifacts},
		{Internalf("x"), ErrorCodeUnknown},
	}
	for _, c := range cases {
		if !IsCode(c.err, c.code) {
			t.Fatalf("%v: code %v, want %v", c.err, CodeOf(c.err), c.code)
		}
	}
	if IsCode(nil, ErrorCodeUnknown) {
		t.Fatal("nil should not match any code")
	}
	if WrapIf(nil, ErrorCodeDB, "x") != nil {
		t.Fatal("WrapIf(nil) should be nil")
	}
}

func TestRoot(t *testing.T) {
	src := stderrs.New("root")
	deep := fmt.Errorf("l2: %w", Wrap(fmt.Errorf("l1: %w", src), ErrorCodeDB, "db"))
	if Root(deep) != src {
		t.Fatalf("Root = %v", Root(deep))
	}
	if Root(nil) != nil {
		t.Fatal("Root(nil) should be nil")
	}
}
