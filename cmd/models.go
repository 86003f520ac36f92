package cmd

import (
	gocontext "context"
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devcli-dev/devcli/internal/provider"
	"github.com/devcli-dev/devcli/internal/ui"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List configured models and what the server offers",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := modelStore()
		if err != nil {
			return err
		}
		cfg, err := store.Load()
		if err != nil {
			return err
		}

		fmt.Println(ui.Bold.Render("Configured models:"))
		for name, mc := range cfg.Models {
			marker := "  "
			if name == cfg.DefaultModel {
				marker = ui.SuccessStyle.Render("* ")
			}
			fmt.Printf("%s%s: %s/%s\n", marker, name, mc.Provider, mc.Model)
		}

		hostURL := viper.GetString("host")
		if hostURL == "" {
			hostURL = defaultHost
		}

		ctx, cancel := gocontext.WithTimeout(gocontext.Background(), 10*time.Second)
		defer cancel()

		p, err := provider.New(ctx, hostURL, viper.GetString("vendor"), viper.GetString("key"))
		if err != nil {
			return err
		}

		serverModels, err := p.ListModels(ctx)
		if err != nil {
			// Unreachable server is non-fatal here; the configured
			// list above is still useful.
			fmt.Println(ui.NewRenderer().WarningMessage("Could not list server models: " + err.Error()))
			return nil
		}

		fmt.Println()
		fmt.Println(ui.Bold.Render("Available on " + hostURL + ":"))
		for _, m := range serverModels {
			fmt.Printf("  %s\n", m)
		}
		return nil
	},
}

var modelAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a model to the configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		providerName, _ := cmd.Flags().GetString("provider")
		modelName, _ := cmd.Flags().GetString("model")
		key, _ := cmd.Flags().GetString("api-key")

		store, err := modelStore()
		if err != nil {
			return err
		}
		if err := store.AddModel(args[0], providerName, modelName, key); err != nil {
			return err
		}

		fmt.Println(ui.NewRenderer().SuccessMessage("Added model: " + args[0]))
		return nil
	},
}

var modelDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Pick the default model interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := modelStore()
		if err != nil {
			return err
		}
		cfg, err := store.Load()
		if err != nil {
			return err
		}

		names := make([]string, 0, len(cfg.Models))
		for name := range cfg.Models {
			names = append(names, name)
		}
		if len(names) == 0 {
			return fmt.Errorf("no models configured; add one with 'devcli models add'")
		}

		prompt := promptui.Select{
			Label: "Default model",
			Items: names,
		}
		_, chosen, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := store.SetDefaultModel(chosen); err != nil {
			return err
		}
		fmt.Println(ui.NewRenderer().SuccessMessage("Default model set to " + chosen))
		return nil
	},
}

func init() {
	modelAddCmd.Flags().StringP("provider", "p", "ollama", "provider type (ollama, vllm, llama.cpp)")
	modelAddCmd.Flags().StringP("model", "m", "", "model identifier on the server")
	modelAddCmd.Flags().StringP("api-key", "k", "", "API key if the server needs one")
	modelAddCmd.MarkFlagRequired("model")

	modelsCmd.AddCommand(modelAddCmd)
	modelsCmd.AddCommand(modelDefaultCmd)
	rootCmd.AddCommand(modelsCmd)
}
