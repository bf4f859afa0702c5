package cmd

import (
	"context"
	"fmt"

	"github.com/mactv-dev/mactv/config"
	"github.com/mactv-dev/mactv/pkg/catalog"
	mhttp "github.com/mactv-dev/mactv/pkg/http"
	"github.com/mactv-dev/mactv/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Build and dump the merged reference catalog",
	Long:  `Fetch every configured catalog source and print the merged key to entry mapping in priority order`,
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

		httpClient := mhttp.NewClient(mhttp.WithTimeout(cfg.Portal.Timeout))
		cat := catalog.Build(ctx, newSources(cfg, httpClient)...)
		for _, key := range cat.Keys() {
			entry, _ := cat.Get(key)
			fmt.Printf("%s\t%s\t%s\n", key, entry.Name, entry.Logo)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
