// Package playlist orders reconciled channels and serializes them to
// M3U. It never mutates entry fields; ordering and formatting only.
package playlist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrEmptyPlaylist guards against clobbering a previous good playlist
// with nothing; callers must not write a file when they see it.
var ErrEmptyPlaylist = errors.New("refusing to write empty playlist")

// Entry is one playlist line pair: the #EXTINF metadata and the URL.
type Entry struct {
	TvgID string
	Name  string
	Logo  string
	Group string
	URL   string
}

// Meta carries the header fields of the generated playlist.
type Meta struct {
	EPGURL      string
	Attribution string
	GeneratedAt time.Time
}

// timestampFormat matches the freshness line viewers see in players
// that surface playlist comments.
const timestampFormat = "02 January 2006 | 03:04 PM"

// Assemble orders entries for output: the preferred group first, then
// remaining groups alphabetically, names case-insensitively within a
// group. Sorting is stable so equal names keep their pipeline order.
func Assemble(entries []Entry, preferredGroup string) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(out, func(i, j int) bool {
		gi, gj := out[i].Group, out[j].Group
		if gi != gj {
			if preferredGroup != "" {
				if gi == preferredGroup {
					return true
				}
				if gj == preferredGroup {
					return false
				}
			}
			return c.CompareString(gi, gj) < 0
		}
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})

	return out
}

// Write serializes the assembled entries: the #EXTM3U header with the
// EPG reference, attribution and freshness comment lines, then one
// metadata line and one URL line per channel.
func Write(w io.Writer, entries []Entry, meta Meta) error {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "#EXTM3U x-tvg-url=%q\n", meta.EPGURL)
	if meta.Attribution != "" {
		fmt.Fprintf(buf, "# POWERED BY: %s\n", meta.Attribution)
	}
	fmt.Fprintf(buf, "# TOTAL CHANNELS: %d\n", len(entries))
	fmt.Fprintf(buf, "# UPDATED: %s\n\n", meta.GeneratedAt.Format(timestampFormat))

	for _, e := range entries {
		fmt.Fprintf(buf,
			"#EXTINF:-1 tvg-id=%q tvg-name=%q tvg-logo=%q group-title=%q, %s\n%s\n",
			e.TvgID, e.Name, e.Logo, e.Group, e.Name, e.URL,
		)
	}

	_, err := io.Copy(w, buf)
	return err
}

// WriteFile writes the playlist atomically: serialize to a temp file
// in the target directory, then rename into place. An empty entry set
// returns ErrEmptyPlaylist without touching the existing file.
func WriteFile(path string, entries []Entry, meta Meta) error {
	if len(entries) == 0 {
		return ErrEmptyPlaylist
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".mactv-*.m3u")
	if err != nil {
		return fmt.Errorf("failed to create temp playlist: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, entries, meta); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// AppendUserAgent annotates a stream URL with the playback User-Agent
// players are expected to present.
func AppendUserAgent(url, userAgent string) string {
	if userAgent == "" || strings.Contains(url, "|User-Agent=") {
		return url
	}
	return url + "|User-Agent=" + userAgent
}
