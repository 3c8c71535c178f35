package catalog

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHolderDefaultsToEmbeddedBundle(t *testing.T) {
	holder := NewHolder(nil)
	if holder.Bundle() != Default() {
		t.Fatal("expected embedded bundle")
	}
	var nilHolder *Holder
	if !nilHolder.HasLocale(BaseLocale) {
		t.Fatal("nil holder should serve the embedded bundle")
	}
}

func TestHolderSwap(t *testing.T) {
	tempDir := t.TempDir()
	writeBaseCore(t, tempDir, "Override")
	bundle, err := LoadDir(tempDir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}

	holder := NewHolder(nil)
	holder.Swap(bundle)
	if got, _ := holder.Message(BaseLocale, "core.app.title"); got != "Override" {
		t.Fatalf("title = %q, want Override", got)
	}

	holder.Swap(nil)
	if holder.Bundle() != bundle {
		t.Fatal("nil swap must keep the current bundle")
	}
}

// TestWatchReloadsChangedCatalogs ensures edits on disk reach the holder.
func TestWatchReloadsChangedCatalogs(t *testing.T) {
	tempDir := t.TempDir()
	writeBaseCore(t, tempDir, "Before")
	bundle, err := LoadDir(tempDir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	holder := NewHolder(bundle)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, tempDir, holder, zap.NewNop()) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watch: %v", err)
		}
	}()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		writeBaseCore(t, tempDir, "After")
		time.Sleep(300 * time.Millisecond)
		if got, _ := holder.Message(BaseLocale, "core.app.title"); got == "After" {
			return
		}
	}
	t.Fatal("catalog was not reloaded")
}

func TestWatchKeepsBundleOnBrokenEdit(t *testing.T) {
	tempDir := t.TempDir()
	writeBaseCore(t, tempDir, "Stable")
	bundle, err := LoadDir(tempDir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	holder := NewHolder(bundle)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, tempDir, holder, zap.NewNop()) }()

	time.Sleep(100 * time.Millisecond)
	mustWriteFile(t, tempDir+"/locales/en-US/core.yaml", "locale: [\n")
	time.Sleep(500 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("watch: %v", err)
	}
	if holder.Bundle() != bundle {
		t.Fatal("broken edit must not replace the bundle")
	}
}
