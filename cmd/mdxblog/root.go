package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eringen/mdxblog"
	"github.com/eringen/mdxblog/theme"
)

// cli holds state shared by the subcommands.
type cli struct {
	cfgFile string
	cfg     mdxblog.SiteConfig
	log     *log.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{log: log.New("mdxblog")}

	root := &cobra.Command{
		Use:   "mdxblog",
		Short: "A personal blog served from a directory of MDX posts",
		Long: `mdxblog serves a blog from a directory of MDX files, or exports it as
static HTML. Settings come from config.yaml, MDXBLOG_* environment variables
and flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSiteConfig(viper.New(), c.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().String("content", "", "post directory (default content/blog)")

	root.AddCommand(
		c.newServeCmd(),
		c.newBuildCmd(),
		c.newListCmd(),
		c.newCheckCmd(),
		newNewCmd(),
		newVersionCmd(),
	)
	return root
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"content": "content_dir",
	"addr":    "addr",
}

// loadSiteConfig resolves the site config: defaults, then the config file,
// then MDXBLOG_* environment variables, then flags.
func loadSiteConfig(v *viper.Viper, cfgFile string, flags *pflag.FlagSet) (mdxblog.SiteConfig, error) {
	var cfg mdxblog.SiteConfig

	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("lang", "en")
	v.SetDefault("source_url", "")
	v.SetDefault("addr", ":"+mdxblog.EnvOr("PORT", "3000"))
	v.SetDefault("content_dir", "content/blog")
	v.SetDefault("extension", ".mdx")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("themes", []string{theme.Default, "theme-dark"})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("MDXBLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return cfg, err
				}
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mdxblog version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "mdxblog %s\n", version)
			return nil
		},
	}
}
