package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestService(t *testing.T, secret string) *Service {
	t.Helper()
	svc, err := NewService(Config{Secret: secret, Issuer: "shopauth", TTL: time.Hour})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := newTestService(t, "unit-test-secret")

	for _, id := range []int64{1, 42, 9007199254740} {
		tok, err := svc.Issue(id)
		if err != nil {
			t.Fatalf("issue(%d): %v", id, err)
		}

		claims, failure := svc.Verify(tok)
		if failure != nil {
			t.Fatalf("verify(%d): %v", id, failure)
		}
		if claims.IdentityID != id {
			t.Errorf("claims.IdentityID = %d, want %d", claims.IdentityID, id)
		}
		if claims.ID == "" {
			t.Error("expected a jti to be set")
		}
	}
}

func TestIssueRejectsInvalidIdentity(t *testing.T) {
	svc := newTestService(t, "unit-test-secret")

	for _, id := range []int64{0, -1} {
		if _, err := svc.Issue(id); err == nil {
			t.Errorf("issue(%d): expected error", id)
		}
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuer := newTestService(t, "secret-a")
	verifier := newTestService(t, "secret-b")

	tok, err := issuer.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, failure := verifier.Verify(tok)
	if failure == nil {
		t.Fatal("expected verification to fail for a foreign secret")
	}
	if claims != nil {
		t.Fatal("claims must never be decoded from an untrusted token")
	}
	if failure.Reason != ReasonSignatureInvalid {
		t.Errorf("reason = %q, want %q", failure.Reason, ReasonSignatureInvalid)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := newTestService(t, "unit-test-secret")

	now := time.Now()
	claims := &Claims{
		IdentityID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shopauth",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, failure := svc.Verify(expired)
	if failure == nil {
		t.Fatal("expected expired token to be rejected")
	}
	if failure.Reason != ReasonExpired {
		t.Errorf("reason = %q, want %q", failure.Reason, ReasonExpired)
	}
}

func TestVerifyRejectsWrongAlgorithm(t *testing.T) {
	svc := newTestService(t, "unit-test-secret")

	claims := &Claims{
		IdentityID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shopauth",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	hs256, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, failure := svc.Verify(hs256); failure == nil {
		t.Fatal("expected non-HS512 token to be rejected")
	}
}

func TestVerifyRejectsUnexpectedShape(t *testing.T) {
	svc := newTestService(t, "unit-test-secret")

	// Structurally valid token signed with the right secret but missing the
	// identity claim.
	claims := jwt.RegisteredClaims{
		Issuer:    "shopauth",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("unit-test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, failure := svc.Verify(tok)
	if failure == nil {
		t.Fatal("expected token without identity claim to be rejected")
	}
	if failure.Reason != ReasonMalformed {
		t.Errorf("reason = %q, want %q", failure.Reason, ReasonMalformed)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestService(t, "unit-test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		claims, failure := svc.Verify(tok)
		if failure == nil {
			t.Errorf("Verify(%q): expected failure", tok)
		}
		if claims != nil {
			t.Errorf("Verify(%q): expected nil claims", tok)
		}
	}
}

func TestDecodeBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"lowercase scheme", "bearer abc", "abc", true},
		{"mixed case scheme", "BeArEr abc", "abc", true},
		{"empty header", "", "", false},
		{"scheme only", "Bearer", "", false},
		{"scheme with trailing space", "Bearer ", "", false},
		{"wrong scheme", "Basic abc", "", false},
		{"extra segments", "Bearer abc def", "", false},
		{"no scheme", "abc.def.ghi", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, ok := DecodeBearer(tt.header)
			if ok != tt.ok {
				t.Fatalf("DecodeBearer(%q) ok = %v, want %v", tt.header, ok, tt.ok)
			}
			if token != tt.token {
				t.Errorf("DecodeBearer(%q) = %q, want %q", tt.header, token, tt.token)
			}
		})
	}
}

func TestUsesDevFallback(t *testing.T) {
	svc := newTestService(t, DevFallbackSecret)
	if !svc.UsesDevFallback() {
		t.Error("expected dev fallback detection")
	}

	svc = newTestService(t, "a-real-secret")
	if svc.UsesDevFallback() {
		t.Error("real secret misreported as dev fallback")
	}
}
