package services

import (
	"context"
	"testing"
	"time"

	types "github.com/yungbote/readnest-backend/internal/domain"
	"github.com/yungbote/readnest-backend/internal/platform/apierr"
	"github.com/yungbote/readnest-backend/internal/repos"
	"github.com/yungbote/readnest-backend/internal/repos/testutil"
)

func newAuthServiceForTest(t *testing.T) (AuthService, context.Context) {
	t.Helper()
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	return NewAuthService(tx, log, userRepo, "test-secret", time.Hour), context.Background()
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, ctx := newAuthServiceForTest(t)

	first, err := svc.Register(ctx, &types.User{
		Email:    "Hash.Me@Example.com",
		Username: "hashme",
		Password: "sekret99",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if first.Password == "sekret99" {
		t.Fatalf("stored password equals plaintext")
	}
	if first.Email != "hash.me@example.com" {
		t.Fatalf("expected normalized email, got %q", first.Email)
	}
	if first.Role != types.RoleUser {
		t.Fatalf("expected default role user, got %q", first.Role)
	}

	// Same plaintext, different salt, different hash.
	second, err := svc.Register(ctx, &types.User{
		Email:    "other@example.com",
		Username: "other",
		Password: "sekret99",
	})
	if err != nil {
		t.Fatalf("Register (second): %v", err)
	}
	if first.Password == second.Password {
		t.Fatalf("two hashes of the same password are identical")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, ctx := newAuthServiceForTest(t)

	cases := []struct {
		name string
		user types.User
	}{
		{"missing email", types.User{Username: "u", Password: "longenough"}},
		{"missing username", types.User{Email: "a@b.c", Password: "longenough"}},
		{"short password", types.User{Email: "a@b.c", Username: "u", Password: "short"}},
		{"unknown role", types.User{Email: "a@b.c", Username: "u", Password: "longenough", Role: "root"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tc.user)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			apiErr, ok := apierr.As(err)
			if !ok || apiErr.Code != "validation_error" {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, ctx := newAuthServiceForTest(t)

	if _, err := svc.Register(ctx, &types.User{
		Email:    "dupe-auth@example.com",
		Username: "dupeauth",
		Password: "longenough",
	}); err != nil {
		t.Fatalf("Register (first): %v", err)
	}

	_, err := svc.Register(ctx, &types.User{
		Email:    "dupe-auth@example.com",
		Username: "dupeauth2",
		Password: "longenough",
	})
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
	if !apierr.IsDuplicate(err) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestLoginIssuesParsableToken(t *testing.T) {
	svc, ctx := newAuthServiceForTest(t)

	registered, err := svc.Register(ctx, &types.User{
		Email:    "login@example.com",
		Username: "login",
		Password: "longenough",
		Role:     types.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := svc.Login(ctx, "login@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %s, got %s", registered.ID, user.ID)
	}

	rd, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if rd.UserID != registered.ID {
		t.Fatalf("token user id mismatch: %s vs %s", rd.UserID, registered.ID)
	}
	if rd.Email != "login@example.com" {
		t.Fatalf("token email mismatch: %q", rd.Email)
	}
	if rd.Role != string(types.RoleAdmin) {
		t.Fatalf("token role mismatch: %q", rd.Role)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, ctx := newAuthServiceForTest(t)

	if _, err := svc.Register(ctx, &types.User{
		Email:    "enum@example.com",
		Username: "enum",
		Password: "longenough",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "enum@example.com", "wrongpass")
	if wrongPassword == nil {
		t.Fatalf("expected error for wrong password")
	}
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "whatever")
	if unknownEmail == nil {
		t.Fatalf("expected error for unknown email")
	}

	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("login failures leak a signal: %q vs %q", wrongPassword.Error(), unknownEmail.Error())
	}
}

func TestParseTokenRejectsBadTokens(t *testing.T) {
	svc, ctx := newAuthServiceForTest(t)

	if _, err := svc.ParseToken("not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}

	if _, err := svc.Register(ctx, &types.User{
		Email:    "parse@example.com",
		Username: "parse",
		Password: "longenough",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := svc.Login(ctx, "parse@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	otherSecret := NewAuthService(nil, testutil.Logger(t), nil, "different-secret", time.Hour)
	if _, err := otherSecret.ParseToken(token); err == nil {
		t.Fatalf("expected error for token signed with another secret")
	}
}
