package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mactv-dev/mactv/config"
	"github.com/mactv-dev/mactv/pkg/logger"
	"github.com/mactv-dev/mactv/pkg/manager"
	"github.com/mactv-dev/mactv/pkg/playlist"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile portal channels and write the playlist",
	Long:  `Fetch the portal lineup, reconcile it against the reference catalogs and write the M3U playlist`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}
		if err := cfg.Validate(); err != nil {
			log.Fatal(err.Error())
		}

		m, err := newManager(cfg)
		if err != nil {
			log.Fatal("failed to create portal client", zap.Error(err))
		}

		channels, stats, err := m.Reconcile(ctx)
		if err != nil {
			log.Fatal("reconciliation failed", zap.Error(err))
		}

		entries := playlist.Assemble(manager.ToPlaylist(channels), cfg.Playlist.Group)

		loc, err := time.LoadLocation(cfg.Playlist.Timezone)
		if err != nil {
			log.Warnw("unknown timezone, falling back to UTC", "timezone", cfg.Playlist.Timezone)
			loc = time.UTC
		}

		err = playlist.WriteFile(cfg.Playlist.Path, entries, playlist.Meta{
			EPGURL:      cfg.Playlist.EPGURL,
			Attribution: cfg.Playlist.Attribution,
			GeneratedAt: time.Now().In(loc),
		})
		if errors.Is(err, playlist.ErrEmptyPlaylist) {
			log.Fatal("no channels survived reconciliation, keeping the previous playlist")
		}
		if err != nil {
			log.Fatal("failed to write playlist", zap.Error(err))
		}

		log.Infow("playlist written",
			"path", cfg.Playlist.Path,
			"channels", humanize.Comma(int64(stats.Kept)),
			"portal_channels", humanize.Comma(int64(stats.Portal)),
		)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
