package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Cause(tc.err); got != tc.root {
				t.Fatalf("unexpected result: %v", got)
			}
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatalf("pkg/errors disagrees: %v", got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"comparison through many wrap layers": {
			a:      ErrOverflow,
			b:      Wrap(Wrapf(ErrOverflow, "balance %d", 1), "credit"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*wrappedError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "nothing to see"); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
}

func TestWrappedErrorMessage(t *testing.T) {
	err := Wrapf(ErrInsufficientFunds, "balance %d", 7)
	if got, want := err.Error(), "balance 7: insufficient funds"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if full := fmt.Sprintf("%+v", err); !strings.Contains(full, "errors_test.go") {
		t.Fatalf("stack trace is missing: %s", full)
	}
}

func TestWithReason(t *testing.T) {
	if err := WithReason(ErrState, nil); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}

	reason := Wrap(ErrInsufficientFunds, "source")
	err := Wrap(WithReason(ErrState, reason), "transfer")
	if !ErrState.Is(err) {
		t.Fatalf("kind is lost: %+v", err)
	}
	if ErrInsufficientFunds.Is(err) {
		t.Fatal("reason must not change the error kind")
	}
	if got := Reason(err); !ErrInsufficientFunds.Is(got) {
		t.Fatalf("unexpected reason: %+v", got)
	}
	if got, want := err.Error(), "transfer: invalid state: source: insufficient funds"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if code, _ := ABCIInfo(err, false); code != ErrState.ABCICode() {
		t.Fatalf("unexpected code %d", code)
	}
	if Reason(Wrap(ErrState, "plain")) != nil {
		t.Fatal("an error without a reason must return nil")
	}
}

func TestRegisterDuplicatedCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicated code registration must panic")
		}
	}()
	Register(ErrNotFound.ABCICode(), "second not found")
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
}

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"plain weave error": {
			err:      ErrUnauthorized,
			wantCode: ErrUnauthorized.code,
			wantLog:  ErrUnauthorized.desc,
		},
		"wrapped weave error": {
			err:      Wrap(Wrap(ErrAmount, "zero"), "distribute"),
			wantCode: ErrAmount.code,
			wantLog:  "distribute: zero: invalid amount",
		},
		"nil is success": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"stdlib is generic message": {
			err:      stdlib.New("stdlib error"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"stdlib returns error message in debug mode": {
			err:      stdlib.New("stdlib error"),
			debug:    true,
			wantCode: internalABCICode,
			wantLog:  "stdlib error",
		},
		"panic message is redacted": {
			err:      Wrap(ErrPanic, "secret location"),
			wantCode: ErrPanic.code,
			wantLog:  ErrPanic.desc,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestABCIError(t *testing.T) {
	err := ABCIError(ErrOverflow.ABCICode(), "credit")
	if !ErrOverflow.Is(err) {
		t.Fatalf("registered code must map back to its error: %v", err)
	}
	unknown := ABCIError(987654, "mystery")
	if code, _ := ABCIInfo(unknown, false); code != internalABCICode {
		t.Fatalf("unregistered code must be internal, got %d", code)
	}
}
