package compose

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/strata-config/strata/ir"
	"github.com/strata-config/strata/ir/keypath"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func mustPath(t *testing.T, expr string) keypath.Path {
	t.Helper()
	p, err := keypath.Parse(expr)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadPlain(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"config.yaml": "a: 1\nb: two\n",
	})
	got, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := ir.FromMap(map[string]*ir.Node{
		"a": ir.FromInt(1),
		"b": ir.FromString("two"),
	})
	if !ir.Equal(got, want) {
		t.Errorf("plain load mismatch")
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"config.yaml": `
defaults:
- base
- db: postgres
- _self_
trainer:
  batch_size: 32
`,
		"base.yaml": `
trainer:
  batch_size: 16
  epochs: 10
`,
		"db/postgres.yaml": `
host: localhost
port: 5432
`,
	})
	got, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The root body wins over base, and the db group lands under "db".
	if n := ir.FindPath(got, mustPath(t, "trainer.batch_size")); n == nil || n.Int64 != 32 {
		t.Errorf("trainer.batch_size = %v, want 32", n)
	}
	if n := ir.FindPath(got, mustPath(t, "trainer.epochs")); n == nil || n.Int64 != 10 {
		t.Errorf("trainer.epochs = %v, want 10", n)
	}
	if n := ir.FindPath(got, mustPath(t, "db.port")); n == nil || n.Int64 != 5432 {
		t.Errorf("db.port = %v, want 5432", n)
	}
	if got.Get("defaults") != nil {
		t.Errorf("defaults key should not survive composition")
	}
}

func TestLoadDefaultsOrder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"config.yaml": "defaults:\n- one\n- two\n",
		"one.yaml":    "x: 1\nonly_one: true\n",
		"two.yaml":    "x: 2\n",
	})
	got, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Get("x").Int64 != 2 {
		t.Errorf("later includes should win, x = %v", got.Get("x"))
	}
	if got.Get("only_one") == nil {
		t.Errorf("earlier include content lost")
	}
}

func TestLoadCycle(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.yaml": "defaults:\n- b\n",
		"b.yaml": "defaults:\n- a\n",
	})
	_, err := Load(filepath.Join(dir, "a.yaml"))
	if !errors.Is(err, ErrCyclicInclude) {
		t.Errorf("got %v, want ErrCyclicInclude", err)
	}
}

func TestLoadDiamondIsNotACycle(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"top.yaml":    "defaults:\n- left\n- right\n",
		"left.yaml":   "defaults:\n- shared\nl: 1\n",
		"right.yaml":  "defaults:\n- shared\nr: 1\n",
		"shared.yaml": "s: 1\n",
	})
	got, err := Load(filepath.Join(dir, "top.yaml"))
	if err != nil {
		t.Fatalf("diamond include should load: %v", err)
	}
	for _, k := range []string{"l", "r", "s"} {
		if got.Get(k) == nil {
			t.Errorf("missing key %q after diamond include", k)
		}
	}
}

func TestLoadMissingInclude(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"config.yaml": "defaults:\n- nope\n",
	})
	_, err := Load(filepath.Join(dir, "config.yaml"))
	if !errors.Is(err, ir.ErrUnresolvedReference) {
		t.Errorf("got %v, want ErrUnresolvedReference", err)
	}
}

func TestLoadOptionalInclude(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"config.yaml": "defaults:\n- \"? nope\"\na: 1\n",
	})
	got, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("optional missing include should be skipped: %v", err)
	}
	if got.Get("a").Int64 != 1 {
		t.Errorf("body lost: %v", got)
	}
}

func TestLoadDefaultsMustBeSequence(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"config.yaml": "defaults: base\n",
	})
	if _, err := Load(filepath.Join(dir, "config.yaml")); !errors.Is(err, ErrDefaults) {
		t.Errorf("got %v, want ErrDefaults", err)
	}
}

func TestLoadScalarRoot(t *testing.T) {
	dir := writeFiles(t, map[string]string{"n.yaml": "42\n"})
	got, err := Load(filepath.Join(dir, "n.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.IsInt() || got.Int64 != 42 {
		t.Errorf("scalar root should pass through, got %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrIO) {
		t.Errorf("got %v, want ErrIO", err)
	}
}
