package cmd

import (
	"github.com/mactv-dev/mactv/config"
	"github.com/mactv-dev/mactv/pkg/logger"
	"github.com/mactv-dev/mactv/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated playlist over HTTP",
	Long:  `Serve the playlist written by sync, plus health and status endpoints`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := config.New(viper.GetViper())
		if err != nil {
			log.Fatal("failed to read configurations", zap.Error(err))
		}

		s := server.New(log, cfg.Playlist.Path)
		if err := s.Serve(cfg.Server.Port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
