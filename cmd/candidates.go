package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Inspect and manage stored candidate applications",
}

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent applications, newest first",
	Run: func(cmd *cobra.Command, _ []string) {
		withStore(func(ctx context.Context, store storage.Store, logger *zap.Logger) error {
			limit, _ := cmd.Flags().GetInt("limit")

			summaries, err := store.ListRecent(ctx, limit)
			if err != nil {
				return err
			}

			if len(summaries) == 0 {
				fmt.Println("no candidates stored yet")
				return nil
			}

			for _, s := range summaries {
				fmt.Printf("%-5d %-25s %-30s %-25s %-12s %s\n",
					s.ID, s.Name, s.Email, s.Position, s.Status,
					s.AppliedAt.Format("2006-01-02 15:04"),
				)
			}
			return nil
		})
	},
}

var candidatesGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show one application by email or id",
	Run: func(cmd *cobra.Command, _ []string) {
		withStore(func(ctx context.Context, store storage.Store, logger *zap.Logger) error {
			email, _ := cmd.Flags().GetString("email")
			id, _ := cmd.Flags().GetInt64("id")

			var (
				stored *storage.Candidate
				err    error
			)
			switch {
			case email != "":
				stored, err = store.GetByEmail(ctx, email)
			case id != 0:
				stored, err = store.GetByID(ctx, id)
			default:
				return errors.New("either --email or --id is required")
			}

			if errors.Is(err, storage.ErrNotFound) {
				fmt.Println("candidate not found")
				return nil
			}
			if err != nil {
				return err
			}

			pretty, err := json.MarshalIndent(struct {
				ID         int64    `json:"id"`
				Name       string   `json:"name"`
				Email      string   `json:"email"`
				Phone      string   `json:"phone"`
				Experience string   `json:"experience"`
				Position   string   `json:"position"`
				Location   string   `json:"location"`
				TechStack  []string `json:"tech_stack"`
				AppliedAt  string   `json:"applied_at"`
				Status     string   `json:"status"`
				Notes      string   `json:"notes,omitempty"`
				Messages   int      `json:"messages"`
			}{
				ID:         stored.ID,
				Name:       stored.Record.Name,
				Email:      stored.Record.Email,
				Phone:      stored.Record.Phone,
				Experience: stored.Record.Experience,
				Position:   stored.Record.Position,
				Location:   stored.Record.Location,
				TechStack:  stored.Record.TechStack,
				AppliedAt:  stored.AppliedAt.Format("2006-01-02 15:04:05"),
				Status:     stored.Status,
				Notes:      stored.Notes,
				Messages:   len(stored.History),
			}, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(pretty))
			return nil
		})
	},
}

var candidatesStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Update the review status of an application",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withStore(func(ctx context.Context, store storage.Store, logger *zap.Logger) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid candidate id %q", args[0])
			}

			status, _ := cmd.Flags().GetString("status")
			notes, _ := cmd.Flags().GetString("notes")
			if strings.TrimSpace(status) == "" {
				return errors.New("--status is required")
			}

			if err := store.UpdateStatus(ctx, id, status, notes); err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					fmt.Println("candidate not found")
					return nil
				}
				return err
			}

			logger.Info("candidate status updated",
				zap.Int64("candidate_id", id),
				zap.String("status", status),
			)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)
	candidatesCmd.AddCommand(candidatesListCmd, candidatesGetCmd, candidatesStatusCmd)

	candidatesListCmd.Flags().Int("limit", 50, "maximum number of applications to list")
	candidatesGetCmd.Flags().String("email", "", "look the candidate up by email")
	candidatesGetCmd.Flags().Int64("id", 0, "look the candidate up by id")
	candidatesStatusCmd.Flags().String("status", "", "new status value, e.g. reviewed, interviewing, rejected")
	candidatesStatusCmd.Flags().String("notes", "", "free-text recruiter notes")
}

// withStore runs fn against the configured database store. Admin commands
// require a persistent store; the in-memory fallback would have nothing in it.
func withStore(fn func(context.Context, storage.Store, *zap.Logger) error) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	storeCfg, err := decodeStoreConfig(config)
	if err != nil {
		logger.Fatal("reading store configuration", zap.Error(err))
	}
	if storeCfg.DSN == "" {
		logger.Fatal("a store dsn is required",
			zap.String("hint", "set store.dsn in the config file or SCREENER_DATABASE_URL"),
		)
	}

	store, err := storage.NewPostgres(ctx, storeCfg.DSN)
	if err != nil {
		logger.Fatal("opening the record store", zap.Error(err))
	}
	defer store.Close()

	if err := fn(ctx, store, logger); err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}
