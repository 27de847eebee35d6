package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	t.Run("MissBeforeSet", func(t *testing.T) {
		_, hit, err := c.Get(ctx, "absent")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if hit {
			t.Error("unexpected hit for absent key")
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		if err := c.Set(ctx, "svg", []byte("<svg/>"), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
		data, hit, err := c.Get(ctx, "svg")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if !hit || !bytes.Equal(data, []byte("<svg/>")) {
			t.Errorf("Get = (%q, %v), want hit with stored bytes", data, hit)
		}
	})

	t.Run("Expiration", func(t *testing.T) {
		if err := c.Set(ctx, "short", []byte("x"), -time.Second); err != nil {
			t.Fatalf("Set: %v", err)
		}
		_, hit, _ := c.Get(ctx, "short")
		if hit {
			t.Error("expired entry returned as hit")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := c.Set(ctx, "gone", []byte("x"), 0); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, hit, _ := c.Get(ctx, "gone"); hit {
			t.Error("deleted entry returned as hit")
		}
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Errorf("Delete of missing key: %v", err)
		}
	})
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h3 := Hash([]byte("world")); h1 == h3 {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestArtifactKey(t *testing.T) {
	svg := ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"})
	png := ArtifactKey("abc", ArtifactKeyOpts{Format: "png"})
	if svg == png {
		t.Error("different formats should produce different keys")
	}
	if other := ArtifactKey("def", ArtifactKeyOpts{Format: "svg"}); svg == other {
		t.Error("different graph hashes should produce different keys")
	}
	if again := ArtifactKey("abc", ArtifactKeyOpts{Format: "svg"}); svg != again {
		t.Error("keys should be deterministic")
	}
}
