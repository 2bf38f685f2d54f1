package rules

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchDefaultKeywords(t *testing.T) {
	m := New(DefaultKeywords())

	tests := []struct {
		line    string
		want    string
		matched bool
	}{
		{"error SIG11\n", "error", true},
		{"ERROR duplicated user\n", "error", true},
		{"info errorcode=7\n", "error", true},
		{"job Failed after 3 tries", "fail", true},
		{"NullPointerException at Foo", "exception", true},
		{"Critical: disk full", "critical", true},
		{"info creating new user 0001\n", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		kw, ok := m.Match(tt.line)
		assert.Equal(t, tt.matched, ok, "line %q", tt.line)
		assert.Equal(t, tt.want, kw, "line %q", tt.line)
	}
}

func TestMatchFirstKeywordInConfiguredOrder(t *testing.T) {
	m := New([]string{"fail", "error"})
	kw, ok := m.Match("error: task failed")
	assert.True(t, ok)
	assert.Equal(t, "fail", kw)
}

func TestMatchUnicodeFolding(t *testing.T) {
	m := New([]string{"straße"})
	_, ok := m.Match("STRASSE closed")
	assert.True(t, ok)
}

func TestNewDropsEmptyAndDuplicateKeywords(t *testing.T) {
	m := New([]string{"", "Error", "error", "panic"})
	assert.Equal(t, []string{"Error", "panic"}, m.Keywords())

	_, ok := New([]string{""}).Match("anything")
	assert.False(t, ok)
}

func TestMatchConcurrent(t *testing.T) {
	m := New(DefaultKeywords())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, ok := m.Match("kernel CRITICAL fault")
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}
