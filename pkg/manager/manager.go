// Package manager orchestrates one reconciliation run: portal lineup
// in, reconciled channel set out.
package manager

import (
	"context"
	"fmt"

	"github.com/mactv-dev/mactv/config"
	"github.com/mactv-dev/mactv/pkg/catalog"
	"github.com/mactv-dev/mactv/pkg/playlist"
	"github.com/mactv-dev/mactv/pkg/portal"
	"github.com/mactv-dev/mactv/pkg/probe"
	"github.com/mactv-dev/mactv/pkg/rename"
)

// PortalClient is the portal session surface the pipeline consumes.
type PortalClient interface {
	Handshake(ctx context.Context) error
	Channels(ctx context.Context) ([]portal.Channel, error)
	Genres(ctx context.Context) (map[string]string, error)
	MAC() string
	UserAgent() string
}

// Manager wires a portal session, the catalog sources and the probing
// policy into the reconciliation pipeline. It holds no state between
// runs; every Reconcile call rebuilds the catalog and channel set.
type Manager struct {
	portal  PortalClient
	sources []catalog.Source
	prober  probe.Prober
	renames *rename.Table
	cfg     config.Config
}

// New creates a Manager from its collaborators and configuration.
func New(portal PortalClient, sources []catalog.Source, prober probe.Prober, cfg config.Config) Manager {
	return Manager{
		portal:  portal,
		sources: sources,
		prober:  prober,
		renames: rename.NewTable(cfg.Reconcile.Renames),
		cfg:     cfg,
	}
}

// RawChannels authenticates and returns the unreconciled portal lineup.
func (m Manager) RawChannels(ctx context.Context) ([]portal.Channel, error) {
	if err := m.portal.Handshake(ctx); err != nil {
		return nil, fmt.Errorf("portal session could not be established: %w", err)
	}

	return m.portal.Channels(ctx)
}

// BuildCatalog fetches and merges the configured reference sources.
func (m Manager) BuildCatalog(ctx context.Context) *catalog.Catalog {
	return catalog.Build(ctx, m.sources...)
}

// ToPlaylist converts reconciled channels into playlist entries.
func ToPlaylist(channels []Channel) []playlist.Entry {
	entries := make([]playlist.Entry, 0, len(channels))
	for _, ch := range channels {
		entries = append(entries, playlist.Entry{
			TvgID: ch.EPGID,
			Name:  ch.Name,
			Logo:  ch.Logo,
			Group: ch.Group,
			URL:   ch.URL,
		})
	}
	return entries
}
