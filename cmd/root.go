package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/mactv-dev/mactv/config"
	"github.com/mactv-dev/mactv/pkg/catalog"
	mhttp "github.com/mactv-dev/mactv/pkg/http"
	"github.com/mactv-dev/mactv/pkg/manager"
	"github.com/mactv-dev/mactv/pkg/portal"
	"github.com/mactv-dev/mactv/pkg/probe"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mactv",
	Short: "mactv cli",
	Long:  `Reconcile a MAG portal's channel lineup against reference catalogs and emit an M3U playlist`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("MACTV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("portal.url", "")
	viper.SetDefault("portal.mac", "")
	viper.SetDefault("portal.userAgent", portal.DefaultUserAgent)
	viper.SetDefault("portal.timeout", 8*time.Second)

	viper.SetDefault("playlist.path", "Live.m3u")
	viper.SetDefault("playlist.epgUrl", "")
	viper.SetDefault("playlist.group", "Mac TV")
	viper.SetDefault("playlist.attribution", "")
	viper.SetDefault("playlist.timezone", "Asia/Kolkata")

	viper.SetDefault("reconcile.keywords", []string{"telugu"})
	viper.SetDefault("reconcile.denylist", []string{})
	viper.SetDefault("reconcile.probeStreams", false)

	viper.SetDefault("server.port", 8080)
}

// newManager wires the portal client, catalog sources and prober the
// way the configuration asks for them.
func newManager(cfg config.Config) (manager.Manager, error) {
	httpClient := mhttp.NewClient(mhttp.WithTimeout(cfg.Portal.Timeout))

	portalClient, err := portal.New(
		cfg.Portal.URL,
		cfg.Portal.MAC,
		portal.WithHTTPClient(httpClient),
		portal.WithUserAgent(cfg.Portal.UserAgent),
	)
	if err != nil {
		return manager.Manager{}, err
	}

	var prober probe.Prober = probe.NopProber{}
	if cfg.Reconcile.ProbeStreams {
		prober = probe.NewHTTPProber(httpClient, cfg.Portal.UserAgent)
	}

	return manager.New(portalClient, newSources(cfg, httpClient), prober, cfg), nil
}

// newSources builds the catalog sources in configured trust order.
func newSources(cfg config.Config, httpClient mhttp.HTTPClient) []catalog.Source {
	sources := make([]catalog.Source, 0, len(cfg.Catalog.Sources))
	for _, s := range cfg.Catalog.Sources {
		switch s.Format {
		case "m3u":
			sources = append(sources, catalog.NewM3USource(s.Name, s.URL, httpClient))
		default:
			sources = append(sources, catalog.NewJSONSource(s.Name, s.URL, httpClient))
		}
	}
	return sources
}
