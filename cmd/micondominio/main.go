package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quilicura/micondominio/internal/profile"
	"github.com/quilicura/micondominio/internal/version"
	"github.com/quilicura/micondominio/server"
	"github.com/quilicura/micondominio/store"
	"github.com/quilicura/micondominio/store/db"
)

var rootCmd = &cobra.Command{
	Use:   "micondominio",
	Short: "Back office for condominium administration with a conversational assistant.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// .env is a convenience for direct execution; process managers pass
		// the environment themselves.
		_ = godotenv.Load()
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile := loadProfile()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		storeInstance, err := newStore(instanceProfile)
		if err != nil {
			slog.Error("failed to create store", "error", err)
			return
		}

		s, err := server.NewServer(ctx, instanceProfile, storeInstance)
		if err != nil {
			slog.Error("failed to create server", "error", err)
			return
		}

		c := make(chan os.Signal, 1)
		signal.Notify(c, terminationSignals...)
		go func() {
			<-c
			s.Shutdown(ctx)
			cancel()
		}()

		printGreetings(instanceProfile)
		if err := s.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			return
		}

		<-ctx.Done()
	},
}

func loadProfile() *profile.Profile {
	instanceProfile := &profile.Profile{
		Mode:   viper.GetString("mode"),
		Addr:   viper.GetString("addr"),
		Port:   viper.GetInt("port"),
		Data:   viper.GetString("data"),
		Driver: viper.GetString("driver"),
		DSN:    viper.GetString("dsn"),
	}
	instanceProfile.Version = version.GetCurrentVersion(instanceProfile.Mode)
	instanceProfile.FromEnv()
	if err := instanceProfile.Validate(); err != nil {
		panic(err)
	}
	return instanceProfile
}

func newStore(instanceProfile *profile.Profile) (*store.Store, error) {
	dbDriver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return nil, err
	}
	return store.New(dbDriver, instanceProfile), nil
}

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("port", 8081)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", "database driver (sqlite, postgres)")
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("micondominio")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(seedCmd)
}

func printGreetings(profile *profile.Profile) {
	fmt.Printf("MiCondominio %s started\n", profile.Version)
	fmt.Printf("Mode: %s\n", profile.Mode)
	fmt.Printf("Data directory: %s\n", profile.Data)
	fmt.Printf("Database driver: %s\n", profile.Driver)
	if profile.IsAIEnabled() {
		fmt.Printf("Assistant: enabled (%s, %s)\n", profile.LLMProvider, profile.LLMModel)
	} else {
		fmt.Println("Assistant: disabled (no LLM API key configured)")
	}
	if profile.Addr == "" {
		fmt.Printf("Listening on http://localhost:%d\n", profile.Port)
	} else {
		fmt.Printf("Listening on http://%s:%d\n", profile.Addr, profile.Port)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
