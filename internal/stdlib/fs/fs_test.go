package fs

import (
	"path/filepath"
	"testing"

	"github.com/cwbudde/go-rift/internal/object"
)

func callHost(t *testing.T, exports map[string]object.Value, name string, args ...object.Value) object.Value {
	t.Helper()
	fn, ok := exports[name].(*object.HostFunction)
	if !ok {
		t.Fatalf("export %q is not a host function", name)
	}
	v, err := fn.Fn(args)
	if err != nil {
		t.Fatalf("%s(%v) returned an error: %v", name, args, err)
	}
	return v
}

func TestWriteThenReadTextRoundTrip(t *testing.T) {
	exports := Exports()
	path := filepath.Join(t.TempDir(), "note.txt")

	callHost(t, exports, "writeText", object.Text(path), object.Text("hello fs"))
	v := callHost(t, exports, "readText", object.Text(path))
	if v != object.Text("hello fs") {
		t.Errorf("got %v, want %q", v, "hello fs")
	}
}

func TestExistsReflectsWriteAndRemove(t *testing.T) {
	exports := Exports()
	path := filepath.Join(t.TempDir(), "note.txt")

	if callHost(t, exports, "exists", object.Text(path)) != object.Bool(false) {
		t.Error("expected exists() to be false before the file is written")
	}
	callHost(t, exports, "writeText", object.Text(path), object.Text("x"))
	if callHost(t, exports, "exists", object.Text(path)) != object.Bool(true) {
		t.Error("expected exists() to be true after the file is written")
	}
	callHost(t, exports, "remove", object.Text(path))
	if callHost(t, exports, "exists", object.Text(path)) != object.Bool(false) {
		t.Error("expected exists() to be false after remove")
	}
}

func TestReadTextMissingFileIsError(t *testing.T) {
	exports := Exports()
	fn := exports["readText"].(*object.HostFunction)
	if _, err := fn.Fn([]object.Value{object.Text(filepath.Join(t.TempDir(), "missing.txt"))}); err == nil {
		t.Error("expected an error reading a nonexistent file")
	}
}

func TestJoinUsesPlatformSeparator(t *testing.T) {
	exports := Exports()
	v := callHost(t, exports, "join", object.Text("a"), object.Text("b"), object.Text("c"))
	if v != object.Text(filepath.Join("a", "b", "c")) {
		t.Errorf("got %v, want %q", v, filepath.Join("a", "b", "c"))
	}
}

func TestListReturnsDirectoryEntries(t *testing.T) {
	exports := Exports()
	dir := t.TempDir()
	callHost(t, exports, "writeText", object.Text(filepath.Join(dir, "a.txt")), object.Text(""))
	callHost(t, exports, "writeText", object.Text(filepath.Join(dir, "b.txt")), object.Text(""))

	v := callHost(t, exports, "list", object.Text(dir))
	list, ok := v.(*object.List)
	if !ok || len(list.Elements) != 2 {
		t.Fatalf("got %#v, want a 2-element sequence", v)
	}
}
