package main

import (
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func fromHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("cannot decode %q hex encoded data: %s", s, err)
	}
	return b
}

// tempKeyPath returns a path to a not yet existing file in a temporary
// directory. Returned cleanup removes the directory.
func tempKeyPath(t testing.TB) (string, func()) {
	t.Helper()
	dir, err := ioutil.TempDir("", "custodycli")
	if err != nil {
		t.Fatal(err)
	}
	return filepath.Join(dir, "priv.key"), func() { os.RemoveAll(dir) }
}
