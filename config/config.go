package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mactv-dev/mactv/pkg/rename"
	"github.com/spf13/viper"
)

type Config struct {
	Portal    Portal    `json:"portal" yaml:"portal" mapstructure:"portal"`
	Catalog   Catalog   `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Reconcile Reconcile `json:"reconcile" yaml:"reconcile" mapstructure:"reconcile"`
	Playlist  Playlist  `json:"playlist" yaml:"playlist" mapstructure:"playlist"`
	Server    Server    `json:"server" yaml:"server" mapstructure:"server"`
}

// Portal identifies the middleware portal and the device identity the
// session authenticates with.
type Portal struct {
	URL       string        `json:"url" yaml:"url" mapstructure:"url" validate:"required,url"`
	MAC       string        `json:"mac" yaml:"mac" mapstructure:"mac" validate:"required,mac"`
	UserAgent string        `json:"userAgent" yaml:"userAgent" mapstructure:"userAgent"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// CatalogSource is one external reference feed. Order in the Sources
// list is trust order: earlier sources win key collisions.
type CatalogSource struct {
	Name   string `json:"name" yaml:"name" mapstructure:"name"`
	URL    string `json:"url" yaml:"url" mapstructure:"url" validate:"required,url"`
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=json m3u"`
}

type Catalog struct {
	Sources []CatalogSource `json:"sources" yaml:"sources" mapstructure:"sources" validate:"dive"`
}

// Reconcile houses the pipeline's filtering and matching policy.
type Reconcile struct {
	Keywords     []string      `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
	Denylist     []string      `json:"denylist" yaml:"denylist" mapstructure:"denylist"`
	ProbeStreams bool          `json:"probeStreams" yaml:"probeStreams" mapstructure:"probeStreams"`
	Renames      []rename.Rule `json:"renames" yaml:"renames" mapstructure:"renames"`
}

type Playlist struct {
	Path        string `json:"path" yaml:"path" mapstructure:"path"`
	EPGURL      string `json:"epgUrl" yaml:"epgUrl" mapstructure:"epgUrl"`
	Group       string `json:"group" yaml:"group" mapstructure:"group"`
	Attribution string `json:"attribution" yaml:"attribution" mapstructure:"attribution"`
	Timezone    string `json:"timezone" yaml:"timezone" mapstructure:"timezone"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	if len(c.Reconcile.Renames) == 0 {
		c.Reconcile.Renames = rename.Defaults()
	}

	return c, nil
}

// Validate checks the structural constraints on the configuration.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
