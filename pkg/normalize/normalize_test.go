package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Gemini", "gemini"},
		{"quality prefix", "TELUGU | Gemini HD", "gemini"},
		{"premium prefix", "IN-PREM | ETV Cinema", "etvcinema"},
		{"standalone tags", "Zee Cinemalu FHD", "zeecinemalu"},
		{"uhd tag", "NTV 4K UHD", "ntv"},
		{"brackets", "ETV (Telangana) [Backup]", "etvtelanganabackup"},
		{"punctuation", "Star-Sports.1", "starsports1"},
		{"empty", "", ""},
		{"only tags", "HD | SD", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}

func TestKeyIdempotent(t *testing.T) {
	inputs := []string{
		"TELUGU | Gemini HD",
		"Maa Music",
		"Zee Cinemalu FHD",
		"Star Maa Movies",
		"ETV (HD)",
	}

	for _, in := range inputs {
		once := Key(in)
		assert.Equal(t, once, Key(once), "key for %q must be stable", in)
	}
}

func TestKeyBrandComposition(t *testing.T) {
	// every spelling of the family collapses to the same key
	assert.Equal(t, "starmaamusic", Key("Maa Music"))
	assert.Equal(t, "starmaamusic", Key("Star Maa Music"))
	assert.Equal(t, "starmaamusic", Key("Maa TV Music HD"))
	assert.Equal(t, "starmaa", Key("Maa"))
	assert.Equal(t, "starmaa", Key("MAA TV"))
}

func TestSpacedKey(t *testing.T) {
	assert.Equal(t, "gemini", SpacedKey("TELUGU | Gemini HD"))
	assert.Equal(t, "zee cinemalu", SpacedKey("Zee  Cinemalu  FHD"))
	assert.Equal(t, "star maa music", SpacedKey("Maa Music"))
}

func TestKeyCollapsesSpacedKey(t *testing.T) {
	inputs := []string{
		"TELUGU | Gemini HD",
		"Maa Music",
		"ETV (Telangana) [Backup]",
		"Star-Sports.1",
	}

	for _, in := range inputs {
		assert.Equal(t, strings.ReplaceAll(SpacedKey(in), " ", ""), Key(in))
	}
}

func TestRecompose(t *testing.T) {
	assert.Equal(t, "Star Maa Music", Recompose("Maa Music"))
	assert.Equal(t, "Star Maa Movies", Recompose("Star Maa Movies"))
	assert.Equal(t, "Star Maa Gold", Recompose("Maa TV Gold"))
	assert.Equal(t, "Gemini Movies", Recompose("Gemini Movies"))
}

func TestStripDisplay(t *testing.T) {
	assert.Equal(t, "Gemini", StripDisplay("TELUGU | Gemini HD"))
	assert.Equal(t, "ETV Cinema", StripDisplay("ETV Cinema SD"))
	assert.Equal(t, "Sakshi TV", StripDisplay("Sakshi TV"))
}
