package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/brewhouse/beanfall"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Environment variables read after .env is loaded.
const (
	envConfig = "BEANFALL_CONFIG"
	envSeed   = "BEANFALL_SEED"
	envDebug  = "BEANFALL_DEBUG"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "beanfall",
	Short: "Animated coffee bean scenes for a scrolling landing page.",
	Long: `beanfall renders a one-shot 3D coffee bean animation inside a ` +
		`scrolling page. The beans start when their section scrolls into view.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML config file (default $"+envConfig+")")
	rootCmd.PersistentFlags().Uint64("seed", 0, "field seed, 0 for random (default $"+envSeed+")")
	rootCmd.PersistentFlags().String("profile", "", "bean profile: thrown or falling")
	rootCmd.PersistentFlags().Int("count", 0, "number of beans")
}

// loadConfig builds the effective config: file, then environment, then
// flags.
func loadConfig(cmd *cobra.Command) (beanfall.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv(envConfig)
	}

	cfg := beanfall.DefaultConfig()
	if path != "" {
		var err error
		cfg, err = beanfall.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	}

	if s := os.Getenv(envSeed); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return cfg, errors.New(envSeed + ": " + err.Error())
		}
		cfg.Seed = seed
	}
	if d := os.Getenv(envDebug); d != "" {
		debug, err := strconv.ParseBool(d)
		if err != nil {
			return cfg, errors.New(envDebug + ": " + err.Error())
		}
		cfg.Debug = debug
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if name, _ := cmd.Flags().GetString("profile"); name != "" {
		p, err := beanfall.ParseProfile(name)
		if err != nil {
			return cfg, err
		}
		if p != cfg.Field.Profile {
			cfg.Field.Profile = p
			cfg.Field.Count = 0
		}
	}
	if n, _ := cmd.Flags().GetInt("count"); n != 0 {
		cfg.Field.Count = n
	}
	if cfg.Field.Count == 0 {
		cfg.Field.Count = beanfall.DefaultFieldConfig(cfg.Field.Profile).Count
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Debug {
		log.Printf("beanfall: config %q seed=%d profile=%v count=%d",
			path, cfg.Seed, cfg.Field.Profile, cfg.Field.Count)
	}
	return cfg, nil
}
