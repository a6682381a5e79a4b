package resolve

import (
	"errors"
	"regexp"
	"testing"

	"github.com/strata-config/strata/ir"
	"github.com/strata-config/strata/parse"
)

func mustParse(t *testing.T, doc string) *ir.Node {
	t.Helper()
	n, err := parse.Parse([]byte(doc), "<test>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return n
}

func TestResolveReferences(t *testing.T) {
	root := mustParse(t, `
name: run
dir: /data/${name}
nested:
  deep: ${dir}/out
port: 8080
addr: host:${port}
flag: ${debug}
debug: true
`)
	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	checks := map[string]string{
		"dir":  "/data/run",
		"addr": "host:8080",
		"flag": "true",
	}
	for key, want := range checks {
		if got := root.Get(key).String; got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
	if got := root.Get("nested").Get("deep").String; got != "/data/run/out" {
		t.Errorf("nested.deep = %q", got)
	}
	// non-string targets keep their types
	if !root.Get("port").IsInt() {
		t.Errorf("port should stay an int")
	}
}

func TestResolveChainOrderIndependent(t *testing.T) {
	// "a" sorts before "b", so the reference resolves before its target
	// is visited by the normal traversal.
	root := mustParse(t, `
a: ${b}/x
b: ${c}
c: v
`)
	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := root.Get("a").String; got != "v/x" {
		t.Errorf("a = %q, want v/x", got)
	}
	if got := root.Get("b").String; got != "v" {
		t.Errorf("b = %q, want v", got)
	}
}

func TestResolveSharedReferent(t *testing.T) {
	root := mustParse(t, "c: ${a}/${b}\na: ${b}\nb: x\n")
	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := root.Get("c").String; got != "x/x" {
		t.Errorf("c = %q, want x/x", got)
	}
}

func TestResolveCycle(t *testing.T) {
	root := mustParse(t, "a: ${b}\nb: ${a}\n")
	if err := Resolve(root); !errors.Is(err, ErrCyclicInterpolation) {
		t.Errorf("got %v, want ErrCyclicInterpolation", err)
	}
}

func TestResolveSelfReference(t *testing.T) {
	root := mustParse(t, "a: ${a}\n")
	if err := Resolve(root); !errors.Is(err, ErrCyclicInterpolation) {
		t.Errorf("got %v, want ErrCyclicInterpolation", err)
	}
}

func TestResolveMissingReference(t *testing.T) {
	root := mustParse(t, "a: ${nope}\n")
	if err := Resolve(root); !errors.Is(err, ir.ErrUnresolvedReference) {
		t.Errorf("got %v, want ErrUnresolvedReference", err)
	}
}

func TestResolveUnterminated(t *testing.T) {
	root := mustParse(t, "a: ${open\n")
	if err := Resolve(root); !errors.Is(err, parse.ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}

func TestResolveContainerReference(t *testing.T) {
	root := mustParse(t, "m:\n  x: 1\na: ${m}\n")
	if err := Resolve(root); !errors.Is(err, ir.ErrTypeMismatch) {
		t.Errorf("got %v, want ErrTypeMismatch", err)
	}
}

func TestResolveNoRescan(t *testing.T) {
	t.Setenv("STRATA_TEST_LITERAL", "${name}")
	root := mustParse(t, "a: ${oc.env:STRATA_TEST_LITERAL}\nname: x\n")
	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// substituted output is not scanned again
	if got := root.Get("a").String; got != "${name}" {
		t.Errorf("a = %q, want the literal placeholder text", got)
	}
}

func TestResolveSequences(t *testing.T) {
	root := mustParse(t, "base: /srv\npaths:\n- ${base}/a\n- ${base}/b\n")
	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	paths := root.Get("paths").Values
	if paths[0].String != "/srv/a" || paths[1].String != "/srv/b" {
		t.Errorf("paths = %v", paths)
	}
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("STRATA_TEST_SET", "fromenv")
	t.Setenv("STRATA_TEST_UNSET", "")
	root := mustParse(t, `
a: ${oc.env:STRATA_TEST_SET}
b: ${oc.env:STRATA_TEST_UNSET,fallback}
c: ${oc.env:STRATA_TEST_UNSET}
d: ${oc.env:STRATA_TEST_UNSET,${a}}
`)
	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	checks := map[string]string{
		"a": "fromenv",
		"b": "fallback",
		"c": "",
		"d": "fromenv",
	}
	for key, want := range checks {
		if got := root.Get(key).String; got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestResolveNow(t *testing.T) {
	root := mustParse(t, "year: y${now:%Y}\n")
	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := root.Get("year").String; !regexp.MustCompile(`^y\d{4}$`).MatchString(got) {
		t.Errorf("year = %q, want y<4 digits>", got)
	}
}

func TestResolveDoubleFormat(t *testing.T) {
	root := mustParse(t, "rate: 0.001\nmsg: r=${rate}\n")
	if err := Resolve(root); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := root.Get("msg").String; got != "r=0.001" {
		t.Errorf("msg = %q", got)
	}
}

func TestResolveExpr(t *testing.T) {
	root := mustParse(t, `
batch: 32
workers: ${expr: get("batch") / 8}
label: ${expr: "b" + string(get("batch"))}
envy: ${expr: env("STRATA_TEST_EXPR")}
custom: ${expr: factor * 2}
`)
	t.Setenv("STRATA_TEST_EXPR", "ev")
	err := ResolveWith(root, &Options{Env: map[string]any{"factor": 3}})
	if err != nil {
		t.Fatalf("ResolveWith: %v", err)
	}
	checks := map[string]string{
		"workers": "4",
		"label":   "b32",
		"envy":    "ev",
		"custom":  "6",
	}
	for key, want := range checks {
		if got := root.Get(key).String; got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestResolveExprBad(t *testing.T) {
	root := mustParse(t, "a: ${expr: !!}\n")
	if err := Resolve(root); !errors.Is(err, parse.ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}
