package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	name string
	raws []Raw
	err  error
}

func (s *stubSource) Name() string {
	return s.name
}

func (s *stubSource) Fetch(_ context.Context) ([]Raw, error) {
	return s.raws, s.err
}

func TestBuildFirstSourceWins(t *testing.T) {
	primary := &stubSource{name: "primary", raws: []Raw{
		{Name: "Gemini TV", Logo: "https://primary/gemini.png", ExternalID: "gemini.in"},
	}}
	secondary := &stubSource{name: "secondary", raws: []Raw{
		{Name: "Gemini TV", Logo: "https://secondary/gemini.png"},
		{Name: "NTV", Logo: "https://secondary/ntv.png"},
	}}

	c := Build(context.Background(), primary, secondary)
	require.Equal(t, 2, c.Len())

	e, ok := c.Get("gemini")
	require.True(t, ok)
	assert.Equal(t, "https://primary/gemini.png", e.Logo)
	assert.Equal(t, "gemini.in", e.ExternalID)

	_, ok = c.Get("ntv")
	assert.True(t, ok)
}

func TestBuildSkipsFailedSource(t *testing.T) {
	broken := &stubSource{name: "broken", err: errors.New("connection refused")}
	working := &stubSource{name: "working", raws: []Raw{{Name: "Sakshi TV"}}}

	c := Build(context.Background(), broken, working)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("sakshi")
	assert.True(t, ok)
}

func TestBuildSkipsEmptyNames(t *testing.T) {
	src := &stubSource{name: "src", raws: []Raw{
		{Name: "   "},
		{Name: "HD"},
		{Name: "ETV"},
	}}

	c := Build(context.Background(), src)
	assert.Equal(t, 1, c.Len())
}

func TestMatchExactBeforePartial(t *testing.T) {
	c := Build(context.Background(), &stubSource{name: "src", raws: []Raw{
		{Name: "Gemini Movies", Logo: "movies.png"},
		{Name: "Gemini", Logo: "gemini.png"},
	}})

	// "Gemini HD" keys to "gemini"; the partial candidate "geminimovies"
	// must not be considered because the exact lookup already hit
	e, ok := c.Match("Gemini HD")
	require.True(t, ok)
	assert.Equal(t, "gemini.png", e.Logo)
}

func TestMatchPartial(t *testing.T) {
	c := Build(context.Background(), &stubSource{name: "src", raws: []Raw{
		{Name: "Abhiruchi", Logo: "abhiruchi.png"},
	}})

	// catalog key is a substring of the raw name's key
	e, ok := c.Match("ETV Abhiruchi HD")
	require.True(t, ok)
	assert.Equal(t, "abhiruchi.png", e.Logo)

	// raw key is a substring of a catalog key
	e, ok = c.Match("Abhi")
	require.True(t, ok)
	assert.Equal(t, "abhiruchi.png", e.Logo)
}

func TestMatchPartialPriorityOrder(t *testing.T) {
	c := Build(context.Background(),
		&stubSource{name: "trusted", raws: []Raw{{Name: "Cinemalu Plus", Logo: "trusted.png"}}},
		&stubSource{name: "fallback", raws: []Raw{{Name: "Zee Cinemalu Plus", Logo: "fallback.png"}}},
	)

	// both keys contain "cinemalu"; insertion order decides
	e, ok := c.Match("Cinemalu")
	require.True(t, ok)
	assert.Equal(t, "trusted.png", e.Logo)
}

func TestMatchBrandComposition(t *testing.T) {
	c := Build(context.Background(), &stubSource{name: "src", raws: []Raw{
		{Name: "Star Maa Music", Logo: "maamusic.png"},
	}})

	// the portal drops the parent brand; key composition restores it
	e, ok := c.Match("Maa Music")
	require.True(t, ok)
	assert.Equal(t, "Star Maa Music", e.Name)
	assert.Equal(t, "maamusic.png", e.Logo)
}

func TestMatchMiss(t *testing.T) {
	c := Build(context.Background(), &stubSource{name: "src", raws: []Raw{{Name: "NTV"}}})

	_, ok := c.Match("Gemini")
	assert.False(t, ok)

	_, ok = c.Match("")
	assert.False(t, ok)

	// a name that normalizes to nothing must not partial-match anything
	_, ok = c.Match("HD |")
	assert.False(t, ok)
}
