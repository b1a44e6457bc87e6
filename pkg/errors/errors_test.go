package errors

import (
	stdErrors "errors"
	"net/http"
	"strings"
	"testing"

	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeInvalidVoucher, status: http.StatusUnprocessableEntity, publicMsg: "invalid code or minimum order not met", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "foo"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
	if !strings.Contains(wrapped.Error(), "boom") {
		t.Fatalf("expected cause in message, got %q", wrapped.Error())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeNotFound, "no entry")
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestHasCodeFollowsWrappedChain(t *testing.T) {
	inner := New(CodeInvalidVoucher, "unknown code")
	outer := stdErrors.Join(stdErrors.New("redeem"), inner)
	if !HasCode(outer, CodeInvalidVoucher) {
		t.Fatalf("expected invalid voucher code in chain")
	}
	if HasCode(outer, CodeNotFound) {
		t.Fatalf("unexpected not found code")
	}
	if HasCode(nil, CodeInternal) {
		t.Fatalf("nil error must not carry a code")
	}
}

func TestDumpFlattensChain(t *testing.T) {
	err := Wrap(CodeDependency, stdErrors.New("disk full"), "persist snapshot")
	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %v", dump.Chain)
	}
	if dump.DBCode != "" || dump.DBDriver != "" {
		t.Fatalf("expected no db details, got %+v", dump)
	}
	if empty := Dump(nil); empty.TopMessage != "" || empty.Chain != nil {
		t.Fatalf("expected zero dump for nil, got %+v", empty)
	}
}

func TestDumpExtractsPostgresDetails(t *testing.T) {
	cause := &pq.Error{Code: "23505", Table: "cart_snapshots", Constraint: "cart_snapshots_pkey", Message: "duplicate key"}
	dump := Dump(Wrap(CodeDependency, cause, "save snapshot"))
	if dump.DBDriver != "pq" {
		t.Fatalf("expected pq driver, got %q", dump.DBDriver)
	}
	if dump.DBCode != "23505" || dump.DBTable != "cart_snapshots" || dump.DBConstraint != "cart_snapshots_pkey" {
		t.Fatalf("unexpected dump %+v", dump)
	}
}
