package testsupport

import (
	"testing/fstest"
)

// MarkdownFixtureFS builds an in-memory content directory from a map of
// file names to markdown bodies.
func MarkdownFixtureFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}
