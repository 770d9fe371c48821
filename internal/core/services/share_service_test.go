package services

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestShareService_CreateRequiresSelectedKit(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)

	if _, err := env.shares.Create(ctx, 7); err != ErrNoKit {
		t.Errorf("Expected ErrNoKit, got %v", err)
	}
}

func TestShareService_CreateRemembersLastShare(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	kit := setupKit(t, env, "Kit A")

	link, err := env.shares.Create(ctx, 7)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if link.KitID != kit.ID {
		t.Errorf("Link points at wrong kit: %q", link.KitID)
	}
	if link.ExpiresAt == nil {
		t.Error("A 7-day link must carry an expiry")
	}

	last, ok := env.session.LastShare()
	if !ok || last.Token != link.Token {
		t.Error("The created link must be remembered as the last share")
	}
}

func TestShareService_ResolveDistinguishesFailures(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	setupKit(t, env, "Kit A")

	link, err := env.shares.Create(ctx, 0)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("valid token resolves", func(t *testing.T) {
		got, err := env.shares.Resolve(ctx, link.Token)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if got.Token != link.Token {
			t.Errorf("Wrong link resolved: %q", got.Token)
		}
	})

	t.Run("unknown token reads as not found", func(t *testing.T) {
		_, err := env.shares.Resolve(ctx, "no-such-token")
		if err == nil || !strings.Contains(err.Error(), "not found or invalid") {
			t.Errorf("Expected not-found message, got %v", err)
		}
	})

	t.Run("inactive token reads as expired or inactive", func(t *testing.T) {
		env.gw.Links[link.Token].IsActive = false
		defer func() { env.gw.Links[link.Token].IsActive = true }()

		_, err := env.shares.Resolve(ctx, link.Token)
		if err == nil || !strings.Contains(err.Error(), "expired or is inactive") {
			t.Errorf("Expected inactive message, got %v", err)
		}
	})

	t.Run("expired token reads as expired or inactive", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		env.gw.Links[link.Token].ExpiresAt = &past

		_, err := env.shares.Resolve(ctx, link.Token)
		if err == nil || !strings.Contains(err.Error(), "expired or is inactive") {
			t.Errorf("Expected expired message, got %v", err)
		}
	})

	t.Run("empty token is rejected locally", func(t *testing.T) {
		if _, err := env.shares.Resolve(ctx, ""); err == nil {
			t.Error("Empty token must be rejected before any network call")
		}
	})
}

func TestShareService_Assets(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	setupWorkspace(t, env)
	asset := setupAsset(t, env, "a.txt")
	setupKit(t, env, "Kit A")
	env.session.Selection().Toggle(asset.ID)
	if _, err := env.kits.AddSelected(ctx); err != nil {
		t.Fatalf("AddSelected failed: %v", err)
	}

	link, err := env.shares.Create(ctx, 7)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	assets, err := env.shares.Assets(ctx, link.Token)
	if err != nil {
		t.Fatalf("Assets failed: %v", err)
	}
	if len(assets) != 1 || assets[0].Name != "a.txt" {
		t.Errorf("Expected the kit member under the token, got %v", assets)
	}
}
