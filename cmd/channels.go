package cmd

import (
	"context"
	"fmt"

	"github.com/mactv-dev/mactv/config"
	"github.com/mactv-dev/mactv/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// channelsCmd represents the channels command
var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List the raw portal channel lineup",
	Long:  `List every channel the portal reports, before any reconciliation`,
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

		channels, err := m.RawChannels(ctx)
		if err != nil {
			log.Fatal("failed to list portal channels", zap.Error(err))
		}

		for _, ch := range channels {
			fmt.Printf("%s\t%s\t%s\n", ch.ID, ch.Name, ch.GenreID)
		}
	},
}

func init() {
	rootCmd.AddCommand(channelsCmd)
}
