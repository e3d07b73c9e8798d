package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"rsderive/internal/diag"
	"rsderive/internal/project"
	"rsderive/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey(project.Sum([]byte("src")), project.Default())

	var miss DiskPayload
	if ok, err := cache.Get(key, &miss); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	in := &DiskPayload{Path: "a.rs", Content: []byte("x"), Fragments: 2, Failures: 1}
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	ok, err := cache.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if out.Path != "a.rs" || string(out.Content) != "x" || out.Fragments != 2 || out.Failures != 1 {
		t.Fatalf("payload = %+v", out)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cache.Get(key, &out); ok {
		t.Fatal("entry survived DropAll")
	}
}

func TestDiskCacheSchemaMismatchIsMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := project.Sum([]byte("k"))
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := msgpack.Marshal(&DiskPayload{Schema: diskCacheSchemaVersion + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestCacheKeyDependsOnConfig(t *testing.T) {
	src := project.Sum([]byte("struct A {}"))
	cfg := project.Default()
	other := cfg
	other.Derive.Marker = "Ghost"
	if CacheKey(src, cfg) == CacheKey(src, other) {
		t.Fatal("marker change must change the key")
	}
	suffix := cfg
	suffix.Output.Suffix = ".gen.rs"
	if CacheKey(src, cfg) != CacheKey(src, suffix) {
		t.Fatal("output suffix does not affect rendered content")
	}
}

func TestCachedDiagnosticsRebind(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.DeriveAttrUnknownKey, source.Span{File: 3, Start: 4, End: 9}, "unknown key").
		WithNote(source.Span{File: 3, Start: 1, End: 2}, "here").
		WithNote(source.Span{File: 7, Start: 1, End: 2}, "elsewhere"))
	bag.Add(diag.NewError(diag.DeriveAttrBadLiteral, source.Span{File: 5}, "other file"))

	cached := cacheDiagnostics(bag, 3)
	if len(cached) != 1 || len(cached[0].Notes) != 1 {
		t.Fatalf("cached = %+v", cached)
	}

	restored := diag.NewBag(10)
	restoreDiagnostics(restored, 0, cached)
	d := restored.Items()[0]
	if d.Primary != (source.Span{File: 0, Start: 4, End: 9}) || d.Code != diag.DeriveAttrUnknownKey {
		t.Fatalf("restored = %+v", d)
	}
	if d.Notes[0].Span.File != 0 || d.Notes[0].Msg != "here" {
		t.Fatalf("note = %+v", d.Notes[0])
	}
}
