package grid

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gridtext/pkg/errors"
)

func TestCharOf(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"plain", Plain("a"), "a"},
		{"styled", Styled{Char: "b", Color: "#f00"}, "b"},
		{"styled pointer", &Styled{Char: "c"}, "c"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CharOf(tt.cell))
		})
	}
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("12,-4")
	require.NoError(t, err)
	assert.Equal(t, Key{X: 12, Y: -4}, k)
	assert.Equal(t, "12,-4", k.String())

	k, err = ParseKey(" 3 , 7 ")
	require.NoError(t, err)
	assert.Equal(t, Key{X: 3, Y: 7}, k)

	for _, bad := range []string{"", "12", "a,1", "1,b", "1;2"} {
		_, err := ParseKey(bad)
		assert.Error(t, err, bad)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidKey), bad)
	}
}

func TestKeysReadingOrder(t *testing.T) {
	g := New()
	g.SetChar(5, 1, "d")
	g.SetChar(0, 1, "c")
	g.SetChar(3, 0, "b")
	g.SetChar(-2, 0, "a")

	assert.Equal(t, []Key{{-2, 0}, {3, 0}, {0, 1}, {5, 1}}, g.Keys())
}

func TestWriteStringSkipsSpaces(t *testing.T) {
	g := New()
	g.WriteString(2, 3, "ab c")

	assert.Equal(t, 3, g.Len())
	ch, ok := g.Char(5, 3)
	assert.True(t, ok)
	assert.Equal(t, "c", ch)
	_, ok = g.Char(4, 3)
	assert.False(t, ok)
}

func TestBounds(t *testing.T) {
	_, ok := New().Bounds()
	assert.False(t, ok)

	g := New()
	g.SetChar(-3, 2, "x")
	g.SetChar(4, -1, "y")
	v, ok := g.Bounds()
	require.True(t, ok)
	assert.Equal(t, Viewport{MinX: -3, MaxX: 4, MinY: -1, MaxY: 2}, v)
}

func TestHashIgnoresInsertionOrder(t *testing.T) {
	a := New()
	a.SetChar(0, 0, "a")
	a.SetChar(1, 0, "b")

	b := New()
	b.SetChar(1, 0, "b")
	b.SetChar(0, 0, "a")

	assert.Equal(t, a.Hash(), b.Hash())

	b.Set(Key{X: 1, Y: 0}, Styled{Char: "b", Color: "red"})
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestViewport(t *testing.T) {
	var none *Viewport
	assert.True(t, none.Contains(1000, -1000))

	v := &Viewport{MinX: 0, MaxX: 10, MinY: -2, MaxY: 2}
	assert.True(t, v.Contains(0, -2))
	assert.True(t, v.Contains(10, 2))
	assert.False(t, v.Contains(11, 0))
	assert.False(t, v.ContainsLine(3))

	assert.NoError(t, v.Validate())
	assert.Error(t, Viewport{MinX: 1, MaxX: 0}.Validate())
}

func TestReadJSON(t *testing.T) {
	in := `{"cells": {"0,0": "a", "1,0": {"char": "b", "color": "#ff0000"}, "-3,2": "c"}}`
	g, err := ReadJSON(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, Plain("a"), g[Key{0, 0}])
	assert.Equal(t, Styled{Char: "b", Color: "#ff0000"}, g[Key{1, 0}])
	assert.Equal(t, Plain("c"), g[Key{-3, 2}])
}

func TestReadJSONErrors(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"cells": {"x": "a"}}`))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidKey))

	_, err = ReadJSON(strings.NewReader(`{"cells": {"0,0": 5}}`))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidGrid))

	_, err = ReadJSON(strings.NewReader(`not json`))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidGrid))
}

func TestWriteJSONRoundTrip(t *testing.T) {
	g := New()
	g.SetChar(0, 0, "a")
	g.Set(Key{X: 2, Y: 1}, Styled{Char: "\"", Background: "blue"})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(g, &buf))

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, g, back)
}

func TestMarshalEmpty(t *testing.T) {
	data, err := Marshal(New())
	require.NoError(t, err)
	back, err := ReadJSON(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 0, back.Len())
}

func TestFromText(t *testing.T) {
	g, err := FromText(strings.NewReader("ab  cd\n\n x"), 10, -1)
	require.NoError(t, err)

	assert.Equal(t, 5, g.Len())
	for _, want := range []struct {
		x, y int
		ch   string
	}{{10, -1, "a"}, {11, -1, "b"}, {14, -1, "c"}, {15, -1, "d"}, {11, 1, "x"}} {
		ch, ok := g.Char(want.x, want.y)
		assert.True(t, ok, "%d,%d", want.x, want.y)
		assert.Equal(t, want.ch, ch)
	}
}
