package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/base/validator"
	"github.com/x-xyz/marketplace/domain/asset"
	"github.com/x-xyz/marketplace/domain/listing"
)

const (
	DefaultPath = "infra/configs/config.yaml"
	envPrefix   = "MARKET"

	StoreMemory = "memory"
	StoreMongo  = "mongo"
	StoreSqlite = "sqlite"
)

type Config struct {
	Debug bool `mapstructure:"debug"`

	App struct {
		Name string `mapstructure:"name"`
		Env  string `mapstructure:"env"`
		Pod  string `mapstructure:"pod"`
	} `mapstructure:"app"`

	Server struct {
		Address         string        `mapstructure:"address" validate:"required"`
		ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	} `mapstructure:"server"`

	Log     log.Config     `mapstructure:"log"`
	Datadog metrics.Config `mapstructure:"datadog"`

	Store struct {
		Driver string `mapstructure:"driver" validate:"oneof=memory mongo sqlite"`
		Mongo  struct {
			URI            string  `mapstructure:"uri"`
			AuthDBName     string  `mapstructure:"authDBName"`
			DBName         string  `mapstructure:"dbName"`
			EnableSSL      bool    `mapstructure:"enableSSL"`
			PoolMultiplier float64 `mapstructure:"poolMultiplier"`
		} `mapstructure:"mongo"`
		Sqlite struct {
			Path string `mapstructure:"path"`
		} `mapstructure:"sqlite"`
	} `mapstructure:"store"`

	Market struct {
		Address   string `mapstructure:"address" validate:"required,address"`
		IdLimit   uint64 `mapstructure:"idLimit" validate:"min=1"`
		InboxSize int    `mapstructure:"inboxSize" validate:"min=0"`
	} `mapstructure:"market"`

	Auth struct {
		JwtSecret    string        `mapstructure:"jwtSecret" validate:"required"`
		SignatureMsg string        `mapstructure:"signatureMsg" validate:"required"`
		TokenTTL     time.Duration `mapstructure:"tokenTTL"`
	} `mapstructure:"auth"`

	Admin struct {
		Addresses []string `mapstructure:"addresses" validate:"dive,address"`
	} `mapstructure:"admin"`

	Sandbox struct {
		Enabled    bool             `mapstructure:"enabled"`
		Registries []asset.Registry `mapstructure:"registries" validate:"dive"`
	} `mapstructure:"sandbox"`

	Discord struct {
		BotKey    string `mapstructure:"botKey"`
		ChannelId string `mapstructure:"channelId"`
		SiteURL   string `mapstructure:"siteURL"`
		Workers   int    `mapstructure:"workers"`
	} `mapstructure:"discord"`
}

// Flags declares the command line switches understood by Load.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", DefaultPath, "path of the yaml config file")
	fs.String("server.address", "", "listen address, overrides server.address")
	fs.String("store.driver", "", "memory, mongo or sqlite, overrides store.driver")
	fs.Bool("debug", false, "debug mode")
	return fs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.maxSizeMB", 100)
	v.SetDefault("log.maxBackups", 5)
	v.SetDefault("log.maxAgeDays", 14)
	v.SetDefault("datadog.port", 8125)
	v.SetDefault("store.driver", StoreMemory)
	v.SetDefault("store.mongo.authDBName", "admin")
	v.SetDefault("store.mongo.poolMultiplier", 2)
	v.SetDefault("market.idLimit", listing.MaxIdLimit)
	v.SetDefault("market.inboxSize", 64)
	v.SetDefault("auth.tokenTTL", 24*time.Hour)
	v.SetDefault("discord.workers", 4)
}

// Load reads .env, then the yaml file named by the "config" flag, then
// MARKET_* environment variables, then explicitly set flags; later sources
// win. The result is validated before it is returned.
func Load(fs *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, xerrors.Errorf("godotenv.Load failed: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("app.pod", "PODNAME")
	_ = v.BindEnv("app.env", "ENV_NAME")
	_ = v.BindEnv("app.name", "APP_NAME")

	path := DefaultPath
	if fs != nil {
		if p, err := fs.GetString("config"); err == nil && p != "" {
			path = p
		}
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Name != "config" && f.Changed {
				_ = v.BindPFlag(f.Name, f)
			}
		})
	}

	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, xerrors.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, xerrors.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return xerrors.Errorf("invalid config: %w", err)
	}
	if c.Market.IdLimit > listing.MaxIdLimit {
		return xerrors.Errorf("invalid config: market.idLimit above %d", listing.MaxIdLimit)
	}
	if c.Store.Driver == StoreMongo && (c.Store.Mongo.URI == "" || c.Store.Mongo.DBName == "") {
		return xerrors.New("invalid config: store.mongo.uri and store.mongo.dbName are required")
	}
	if c.Store.Driver == StoreSqlite && c.Store.Sqlite.Path == "" {
		return xerrors.New("invalid config: store.sqlite.path is required")
	}
	return nil
}

// Metrics returns the datadog settings tagged with this process' identity.
func (c *Config) Metrics() metrics.Config {
	m := c.Datadog
	m.AppName = c.App.Name
	m.EnvName = c.App.Env
	m.PodName = c.App.Pod
	return m
}
