package ir

import "testing"

func mkTree(pairs map[string]*Node) *Node {
	return FromMap(pairs)
}

func TestMergeScalars(t *testing.T) {
	dst := FromInt(1)
	Merge(dst, FromString("x"))
	if !dst.IsString() || dst.String != "x" {
		t.Errorf("scalar over scalar should replace, got %v", dst.Type)
	}
}

func TestMergeNullSource(t *testing.T) {
	dst := mkTree(map[string]*Node{"a": FromInt(1)})
	Merge(dst, Null())
	if !dst.IsNull() {
		t.Errorf("null source should erase, got %v", dst.Type)
	}
}

func TestMergeNullDest(t *testing.T) {
	dst := Null()
	src := mkTree(map[string]*Node{"a": FromInt(1)})
	Merge(dst, src)
	if !Equal(dst, src) {
		t.Errorf("null destination should take the source value")
	}
	// The result must not alias src.
	dst.Get("a").Int64 = 9
	if src.Get("a").Int64 != 1 {
		t.Errorf("merge into null aliased the source")
	}
}

func TestMergeMappings(t *testing.T) {
	dst := mkTree(map[string]*Node{
		"keep": FromInt(1),
		"deep": mkTree(map[string]*Node{"x": FromInt(1), "y": FromInt(2)}),
	})
	src := mkTree(map[string]*Node{
		"new":  FromString("n"),
		"deep": mkTree(map[string]*Node{"y": FromInt(20), "z": FromInt(30)}),
	})
	Merge(dst, src)
	want := mkTree(map[string]*Node{
		"keep": FromInt(1),
		"new":  FromString("n"),
		"deep": mkTree(map[string]*Node{"x": FromInt(1), "y": FromInt(20), "z": FromInt(30)}),
	})
	if !Equal(dst, want) {
		t.Errorf("deep merge mismatch")
	}
}

func TestMergeSequenceReplaces(t *testing.T) {
	dst := FromSlice([]*Node{FromInt(1), FromInt(2), FromInt(3)})
	src := FromSlice([]*Node{FromInt(9)})
	Merge(dst, src)
	if len(dst.Values) != 1 || dst.Values[0].Int64 != 9 {
		t.Errorf("sequences should replace wholesale, got %d elements", len(dst.Values))
	}
}

func TestMergeMappingOverScalar(t *testing.T) {
	dst := FromString("s")
	src := mkTree(map[string]*Node{"a": FromInt(1)})
	Merge(dst, src)
	if !Equal(dst, src) {
		t.Errorf("mapping over scalar should replace")
	}
}

func TestMergedAssociative(t *testing.T) {
	a := mkTree(map[string]*Node{"x": FromInt(1), "m": mkTree(map[string]*Node{"p": FromInt(1)})})
	b := mkTree(map[string]*Node{"y": FromInt(2), "m": mkTree(map[string]*Node{"q": FromInt(2)})})
	c := mkTree(map[string]*Node{"x": FromInt(3), "m": mkTree(map[string]*Node{"p": FromInt(3)})})
	left := Merged(Merged(a, b), c)
	right := Merged(a, Merged(b, c))
	if !Equal(left, right) {
		t.Errorf("merge should be associative")
	}
}

func TestMergedReapply(t *testing.T) {
	a := mkTree(map[string]*Node{"x": FromInt(1), "m": mkTree(map[string]*Node{"p": FromInt(1)})})
	b := mkTree(map[string]*Node{"x": FromInt(2), "m": mkTree(map[string]*Node{"q": FromInt(2)})})
	once := Merged(a, b)
	if !Equal(Merged(once, b), once) {
		t.Errorf("re-applying the same overlay should change nothing")
	}
}

func TestMergedIdempotent(t *testing.T) {
	a := mkTree(map[string]*Node{
		"x": FromInt(1),
		"m": mkTree(map[string]*Node{"p": FromString("v")}),
		"s": FromSlice([]*Node{FromInt(1)}),
	})
	if !Equal(Merged(a, a), a) {
		t.Errorf("merging a tree with itself should be a no-op")
	}
}
