package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/ai/gemini"
	"github.com/talentscout/screener/internal/candidate"
	"github.com/talentscout/screener/internal/conversation"
	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/question"
	"github.com/talentscout/screener/internal/secrets"
	"github.com/talentscout/screener/internal/storage"
	"github.com/talentscout/screener/internal/tui"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive screening conversation",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("tui", false, "full-screen chat interface instead of the plain prompt loop")
	runCmd.Flags().Bool("no-ai", false, "skip the generation service and use deterministic questions only")
}

// run hosts one screening session on the terminal.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screener", zap.String("version", version))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	store, err := openStore(ctx, config, logger)
	if err != nil {
		logger.Fatal("opening the record store", zap.Error(err))
	}
	defer store.Close()

	machine := newMachine(ctx, cmd, config, store, logger)

	if cmd.Flag("tui").Value.String() == "true" {
		if err := tui.Run(machine); err != nil {
			logger.Fatal("running the chat interface", zap.Error(err))
		}
		return
	}

	runPromptLoop(ctx, machine, logger)
}

// runPromptLoop is the plain surface: one prompt per turn until the session
// reaches its terminal stage or the candidate interrupts.
func runPromptLoop(ctx context.Context, machine *conversation.Machine, logger *zap.Logger) {
	session := candidate.NewSession()

	fmt.Println(machine.Greeting())

	for {
		prompt := promptui.Prompt{Label: "You"}

		input, err := prompt.Run()
		if err != nil {
			// Ctrl-C / EOF ends the conversation without a closing turn.
			logger.Info("conversation interrupted", zap.String("session_id", session.ID))
			return
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		reply := machine.Process(ctx, session, input)
		fmt.Printf("\n%s\n\n", reply)

		if session.Stage.Terminal() {
			logger.Info("conversation finished",
				zap.String("session_id", session.ID),
				zap.Bool("saved", session.Saved),
			)
			return
		}
	}
}

func newMachine(ctx context.Context, cmd *cobra.Command, config *Config, store storage.Store, logger *zap.Logger) *conversation.Machine {
	var generator ai.Generator
	maxLogLength := 0

	if cmd.Flag("no-ai").Value.String() == "true" {
		logger.Info("generation service disabled by flag, using deterministic questions")
	} else {
		gen, err := newGenerator(ctx, config)
		if err != nil {
			// Absent credential is not fatal: the engine stays in
			// fallback-only mode for the whole session.
			logger.Warn("generation service unavailable, using deterministic questions",
				zap.Error(err),
				zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
			)
		} else {
			generator = gen
			logger.Info("generation service configured", zap.String("model", gen.Model()))
		}
	}

	if config != nil && config.AI != nil && config.AI.Gemini != nil {
		maxLogLength = config.AI.Gemini.MaxLogLength
	}

	engine := question.NewEngine(generator, maxLogLength, logger)
	return conversation.New(engine, store, logger)
}

func newGenerator(ctx context.Context, config *Config) (*gemini.Generator, error) {
	var cfg *GeminiConfig
	if config != nil && config.AI != nil {
		provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
		if provider != "" && provider != "gemini" {
			return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
		}
		cfg = config.AI.Gemini
	}
	if cfg == nil {
		cfg = &GeminiConfig{}
	}

	keyFile := strings.TrimSpace(cfg.APIKeyFile)
	if keyFile == "" {
		keyFile = strings.TrimSpace(viper.GetString("ai.gemini.api-key-file"))
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: keyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	return gemini.NewGenerator(ctx, apiKey, cfg.Model, timeout)
}

// openStore picks the configured record store. Without a DSN the session
// still runs, backed by the in-memory store.
func openStore(ctx context.Context, config *Config, logger *zap.Logger) (storage.Store, error) {
	storeCfg, err := decodeStoreConfig(config)
	if err != nil {
		return nil, err
	}

	if storeCfg.DSN == "" {
		logger.Warn("no store dsn configured, completed records will not be persisted across runs")
		return storage.NewMemory(), nil
	}

	driver := strings.TrimSpace(strings.ToLower(storeCfg.Driver))
	if driver != "" && driver != "postgres" {
		return nil, fmt.Errorf("unsupported store driver: %s", storeCfg.Driver)
	}

	store, err := storage.NewPostgres(ctx, storeCfg.DSN)
	if err != nil {
		return nil, err
	}

	logger.Info("record store connected", zap.String("driver", "postgres"))
	return store, nil
}

func decodeStoreConfig(config *Config) (*StoreConfig, error) {
	if config != nil && config.Store != nil {
		cfg := *config.Store
		if cfg.DSN == "" {
			cfg.DSN = strings.TrimSpace(viper.GetString("store.dsn"))
		}
		return &cfg, nil
	}

	return &StoreConfig{DSN: strings.TrimSpace(viper.GetString("store.dsn"))}, nil
}
