// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/tokenomy/stackedmap"
)

func newMap(src map[string]string) *stackedmap.StackedMap[string, string] {
	return stackedmap.New(func(key string) (string, bool, error) {
		v, ok := src[key]
		return v, ok, nil
	})
}

func TestStackedMap(t *testing.T) {
	sm := newMap(map[string]string{"foo": "bar"})

	get := func(key string) string {
		v, _, err := sm.Get(key)
		assert.NoError(t, err)
		return v
	}

	tests := []struct {
		f        func()
		depth    int
		putKey   string
		putValue string
		getKey   string
		want     string
	}{
		{func() {}, 1, "", "", "foo", "bar"},
		{func() { sm.Push() }, 2, "foo", "baz", "foo", "baz"},
		{func() {}, 2, "foo", "baz1", "foo", "baz1"},
		{func() { sm.Push() }, 3, "foo", "qux", "foo", "qux"},
		{func() { sm.Pop() }, 2, "", "", "foo", "baz1"},
		{func() { sm.Pop() }, 1, "", "", "foo", "bar"},
		{func() { sm.Push(); sm.Push() }, 3, "", "", "foo", "bar"},
		{func() { sm.PopTo(1) }, 1, "", "", "foo", "bar"},
	}

	for _, tt := range tests {
		tt.f()
		assert.Equal(t, tt.depth, sm.Depth())
		if tt.putKey != "" {
			sm.Put(tt.putKey, tt.putValue)
		}
		if tt.getKey != "" {
			assert.Equal(t, tt.want, get(tt.getKey))
		}
	}
}

func TestStackedMapJournal(t *testing.T) {
	sm := newMap(map[string]string{})

	sm.Put("a", "1")
	rev := sm.Push()
	sm.Put("b", "2")
	sm.Put("a", "3")

	var keys []string
	sm.Journal(func(k, v string) bool {
		keys = append(keys, k+"="+v)
		return true
	})
	assert.Equal(t, []string{"a=1", "b=2", "a=3"}, keys)

	sm.PopTo(rev)
	keys = nil
	sm.Journal(func(k, v string) bool {
		keys = append(keys, k+"="+v)
		return true
	})
	assert.Equal(t, []string{"a=1"}, keys)

	_, found, _ := sm.Get("b")
	assert.False(t, found)

	// early stop
	sm.Put("c", "4")
	count := 0
	sm.Journal(func(string, string) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestStackedMapSourceError(t *testing.T) {
	sm := stackedmap.New(func(string) (string, bool, error) {
		return "", false, errors.New("boom")
	})
	_, _, err := sm.Get("x")
	assert.EqualError(t, err, "boom")

	sm.Put("x", "y")
	v, found, err := sm.Get("x")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "y", v)
}
