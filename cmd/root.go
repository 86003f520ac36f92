package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devcli-dev/devcli/internal/assistant"
	"github.com/devcli-dev/devcli/internal/config"
)

var (
	cfgFile   string
	host      string
	apiKey    string
	model     string
	vendor    string
	noSpinner bool
	Version   = "dev"
)

const defaultHost = "http://localhost:11434"

var rootCmd = &cobra.Command{
	Use:     "devcli",
	Version: Version,
	Short:   "devcli - AI coding assistant for local models",
	Long: `devcli is a command-line AI coding assistant. It scans your project,
builds a token-bounded context from the files relevant to your
question, and sends it to a locally running language-model server.`,
	Run: func(cmd *cobra.Command, args []string) {
		startREPL()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.devcli/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&host, "host", "", "model server URL (default "+defaultHost+")")
	rootCmd.PersistentFlags().StringVar(&apiKey, "key", "", "API key (optional for local servers)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "configured model name (default from config.json)")
	rootCmd.PersistentFlags().StringVar(&vendor, "vendor", "", "server vendor (auto, ollama, vllm, llama.cpp)")
	rootCmd.PersistentFlags().BoolVar(&noSpinner, "no-spinner", false, "disable spinner animations")

	viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("key", rootCmd.PersistentFlags().Lookup("key"))
	viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))
	viper.BindPFlag("vendor", rootCmd.PersistentFlags().Lookup("vendor"))
	viper.BindPFlag("no_spinner", rootCmd.PersistentFlags().Lookup("no-spinner"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".devcli")
		os.MkdirAll(configDir, 0755)

		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("DEVCLI")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// modelStore opens the JSON model registry at its default location.
func modelStore() (*config.Store, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	return config.NewStore(path), nil
}

// newAssistant builds an assistant from flags, environment, and the
// model registry, for the current working directory.
func newAssistant() (*assistant.Assistant, error) {
	store, err := modelStore()
	if err != nil {
		return nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}

	mc, err := cfg.Resolve(viper.GetString("model"))
	if err != nil {
		return nil, err
	}

	hostURL := viper.GetString("host")
	if hostURL == "" {
		hostURL = defaultHost
	}

	vendorName := viper.GetString("vendor")
	if vendorName == "" {
		vendorName = mc.Provider
	}

	key := viper.GetString("key")
	if key == "" {
		key = mc.APIKey
	}

	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("determine working directory: %w", err)
	}

	return assistant.New(assistant.Options{
		Host:          hostURL,
		Vendor:        vendorName,
		APIKey:        key,
		Model:         mc.Model,
		WorkingDir:    workingDir,
		MaxTokens:     cfg.MaxTokens,
		MaxFiles:      cfg.MaxFiles,
		EnableSpinner: !viper.GetBool("no_spinner"),
	})
}
