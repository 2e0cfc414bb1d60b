package tokens

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/takoapp/tako/internal/store"
)

func newTestIssuer() *Issuer {
	return NewIssuer("test-master-key", store.NewMemoryStorage(), time.Hour, time.Hour)
}

func TestIssueAndVerifyRecordToken(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer()

	session, token, err := issuer.IssueRecordToken(ctx, "users", 123)
	if err != nil {
		t.Fatalf("IssueRecordToken failed: %v", err)
	}
	if token == "" || session.ID == "" {
		t.Fatal("IssueRecordToken returned empty token or session id")
	}

	got, err := issuer.Verify(ctx, token, TokenTypeRecord)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if got.RecordID != 123 || got.Collection != "users" {
		t.Errorf("verified session = %+v", got)
	}
}

func TestIssueRecordTokenFreshSessions(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer()

	first, _, err := issuer.IssueRecordToken(ctx, "users", 7)
	if err != nil {
		t.Fatalf("IssueRecordToken failed: %v", err)
	}
	second, _, err := issuer.IssueRecordToken(ctx, "users", 7)
	if err != nil {
		t.Fatalf("IssueRecordToken failed: %v", err)
	}
	if first.ID == second.ID {
		t.Error("repeated issuance reused a session id")
	}
}

func TestVerifyRejectsWrongType(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer()

	_, token, err := issuer.IssueRecordToken(ctx, "users", 1)
	if err != nil {
		t.Fatalf("IssueRecordToken failed: %v", err)
	}
	if _, err := issuer.Verify(ctx, token, TokenTypeAdmin); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("record token passed admin verification: err = %v", err)
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer()
	other := NewIssuer("other-key", store.NewMemoryStorage(), time.Hour, time.Hour)

	_, token, err := issuer.IssueAdminToken(ctx, 1)
	if err != nil {
		t.Fatalf("IssueAdminToken failed: %v", err)
	}
	if _, err := other.Verify(ctx, token, TokenTypeAdmin); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("token verified under different master key: err = %v", err)
	}
}

func TestVerifyRejectsRevokedSession(t *testing.T) {
	ctx := context.Background()
	issuer := newTestIssuer()

	session, token, err := issuer.IssueAdminToken(ctx, 9)
	if err != nil {
		t.Fatalf("IssueAdminToken failed: %v", err)
	}
	if err := issuer.Revoke(ctx, session.ID); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := issuer.Verify(ctx, token, TokenTypeAdmin); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("revoked token still verifies: err = %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := newTestIssuer()
	if _, err := issuer.Verify(context.Background(), "not-a-token", TokenTypeAdmin); err == nil {
		t.Error("garbage token verified")
	}
}
