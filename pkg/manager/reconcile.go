package manager

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/mactv-dev/mactv/pkg/cache"
	"github.com/mactv-dev/mactv/pkg/catalog"
	"github.com/mactv-dev/mactv/pkg/logger"
	"github.com/mactv-dev/mactv/pkg/normalize"
	"github.com/mactv-dev/mactv/pkg/playlist"
	"github.com/mactv-dev/mactv/pkg/portal"
	"github.com/mactv-dev/mactv/pkg/rename"
)

// urlPattern lifts the playable URL out of the portal's cmd field,
// which wraps it in player directives and pipe-separated options.
var urlPattern = regexp.MustCompile(`https?://[^\s|]+`)

// Reconcile runs the full pipeline: fetch the portal lineup, build
// the reference catalog, then walk every record in portal order
// through filter, rename, catalog override, liveness and dedup. A
// failed handshake aborts the run; everything else degrades or skips
// per record.
func (m Manager) Reconcile(ctx context.Context) ([]Channel, Stats, error) {
	log := logger.FromCtx(ctx)
	var stats Stats

	if err := m.portal.Handshake(ctx); err != nil {
		return nil, stats, fmt.Errorf("portal session could not be established: %w", err)
	}

	raw, err := m.portal.Channels(ctx)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to list portal channels: %w", err)
	}
	stats.Portal = len(raw)

	genres := cache.New[string, string]()
	genreMap, err := m.portal.Genres(ctx)
	if err != nil {
		log.Warnw("genre lookup unavailable, filtering on names only", "error", err)
	}
	for id, label := range genreMap {
		genres.Set(id, label)
	}

	cat := catalog.Build(ctx, m.sources...)
	if cat.Len() == 0 {
		log.Warn("reference catalog is empty, portal names will be used as-is")
	}

	// multiple portal records can share one physical URL; probe each
	// URL at most once per run
	probed := cache.New[string, bool]()

	seen := make(map[string]bool, len(raw))
	rotating := 0
	channels := make([]Channel, 0, len(raw))

	for _, rec := range raw {
		sm := newRecordMachine()
		genreLabel, _ := genres.Get(string(rec.GenreID))

		ch, outcome := m.resolve(ctx, rec, genreLabel, cat, probed, seen, &rotating)
		if err := sm.Transition(outcome); err != nil {
			return nil, stats, fmt.Errorf("record %q: %w", rec.Name, err)
		}

		switch sm.Current() {
		case stateFiltered:
			stats.Filtered++
		case stateDead:
			stats.Dead++
		case stateDeduped:
			stats.Deduped++
		case stateReconciled:
			seen[ch.Key] = true
			channels = append(channels, ch)
		}
	}

	stats.Kept = len(channels)
	log.Infow("reconciliation complete",
		"portal_channels", stats.Portal,
		"filtered", stats.Filtered,
		"dead", stats.Dead,
		"deduped", stats.Deduped,
		"kept", stats.Kept,
	)

	return channels, stats, nil
}

// resolve walks one portal record to its terminal state and, when it
// survives, the reconciled channel it becomes. The caller owns the
// seen set; resolve only reads it.
func (m Manager) resolve(ctx context.Context, rec portal.Channel, genreLabel string, cat *catalog.Catalog, probed *cache.Cache[string, bool], seen map[string]bool, rotating *int) (Channel, recordState) {
	log := logger.FromCtx(ctx)

	if !m.inDomain(rec.Name, genreLabel) || m.denied(rec.Name) {
		return Channel{}, stateFiltered
	}

	streamURL := urlPattern.FindString(rec.Cmd)
	if streamURL == "" {
		log.Debugw("no stream url in portal command", "name", rec.Name)
		return Channel{}, stateFiltered
	}
	streamURL = m.rewriteAuth(streamURL)

	stripped := stripDomainPrefix(rec.Name, m.cfg.Reconcile.Keywords)
	working := m.renames.Apply(stripped)

	// rotating status is fixed by the rename outcome; a catalog entry
	// colliding with the rotating name must not re-enter these
	// records into dedup
	rotatingFeed := working == rename.RotatingFeedName

	// a forced rename is already canonical; only undecorated
	// names get the generic tag-stripping for display
	display := working
	if working == stripped {
		display = normalize.Recompose(normalize.StripDisplay(working))
	}
	logo := rec.Logo
	epgID := rec.XMLTVID
	if entry, ok := cat.Match(working); ok {
		display = entry.Name
		logo = entry.Logo
		if entry.ExternalID != "" {
			epgID = entry.ExternalID
		}
	}

	key := normalize.Key(display)
	if rotatingFeed {
		// rotating feeds share a display name across distinct
		// streams; uniquify so dedup keeps them all
		key = fmt.Sprintf("%s-%d", key, *rotating)
		*rotating++
	}

	if m.cfg.Reconcile.ProbeStreams {
		alive := probed.GetOrSet(streamURL, func() bool {
			return m.prober.Alive(ctx, streamURL)
		})
		if !alive {
			log.Debugw("dropping dead stream", "name", display)
			return Channel{}, stateDead
		}
	}

	if seen[key] {
		return Channel{}, stateDeduped
	}

	return Channel{
		Name:  display,
		Logo:  logo,
		EPGID: epgID,
		Group: m.cfg.Playlist.Group,
		URL:   playlist.AppendUserAgent(streamURL, m.portal.UserAgent()),
		Key:   key,
	}, stateReconciled
}

// inDomain reports whether a record belongs to the target domain: its
// name or genre label contains one of the configured keywords. An
// empty vocabulary admits everything.
func (m Manager) inDomain(name, genreLabel string) bool {
	if len(m.cfg.Reconcile.Keywords) == 0 {
		return true
	}

	lowerName := strings.ToLower(name)
	lowerGenre := strings.ToLower(genreLabel)
	for _, kw := range m.cfg.Reconcile.Keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(lowerName, kw) || strings.Contains(lowerGenre, kw) {
			return true
		}
	}

	return false
}

// denied reports whether the record hits the exclusion list.
func (m Manager) denied(name string) bool {
	lower := strings.ToLower(name)
	for _, d := range m.cfg.Reconcile.Denylist {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

// rewriteAuth replaces an embedded device identifier in the stream
// URL with the session's own. Catalog-recovered identifiers must
// never leak into the output.
func (m Manager) rewriteAuth(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	q := u.Query()
	if !q.Has("mac") {
		return rawURL
	}

	q.Set("mac", m.portal.MAC())
	u.RawQuery = q.Encode()
	return u.String()
}

// stripDomainPrefix removes a leading "<keyword> |" label the portal
// prepends to names inside a themed bouquet.
func stripDomainPrefix(name string, keywords []string) string {
	before, after, found := strings.Cut(name, "|")
	if !found {
		return strings.TrimSpace(name)
	}

	prefix := strings.TrimSpace(before)
	for _, kw := range keywords {
		if strings.EqualFold(prefix, kw) {
			return strings.TrimSpace(after)
		}
	}

	return strings.TrimSpace(name)
}
