package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	rdb "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/odic/internal/config"
	"github.com/dropDatabas3/odic/internal/directory"
	httpserver "github.com/dropDatabas3/odic/internal/http"
	"github.com/dropDatabas3/odic/internal/http/controllers"
	"github.com/dropDatabas3/odic/internal/http/router"
	"github.com/dropDatabas3/odic/internal/metrics"
	"github.com/dropDatabas3/odic/internal/observability/logger"
	"github.com/dropDatabas3/odic/internal/rate"
	"github.com/dropDatabas3/odic/internal/security/password"
	"github.com/dropDatabas3/odic/internal/store"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "odic",
		Short: "Directorio de realms, usuarios y clients",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Ruta al YAML de configuración (opcional)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP del directorio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea un realm y un usuario de prueba en el store configurado",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(configPath)
		},
	}

	root.AddCommand(serveCmd, seedCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resuelve la configuración: .env primero, después YAML si
// hay path, si no env + defaults.
func loadConfig(path string) (*config.Config, error) {
	_ = godotenv.Load()

	if path != "" {
		return config.Load(path)
	}
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runServe(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "odic"})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("odic")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := store.Open(ctx, storeConfig(cfg))
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repos.Close(closeCtx); err != nil {
			log.Warn("store close failed", logger.Err(err))
		}
	}()

	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	dir := directory.New(repos, password.Default())

	handler := router.New(router.Deps{
		Realms:          controllers.NewRealmsController(dir),
		Users:           controllers.NewUsersController(dir),
		Clients:         controllers.NewClientsController(dir),
		Health:          controllers.NewHealthController(repos),
		RegisterLimiter: buildLimiter(cfg),
		Metrics:         reg,
	})

	srv := httpserver.NewServer(cfg.Server.Addr, handler)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	log.Info("server started",
		logger.String("addr", cfg.Server.Addr),
		logger.String("driver", cfg.Storage.Driver),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// runSeed deja datos mínimos para probar el servicio a mano: un realm
// "local", un usuario admin@local.test miembro del realm y un client.
func runSeed(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, err := store.Open(ctx, storeConfig(cfg))
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer func() { _ = repos.Close(context.Background()) }()

	dir := directory.New(repos, password.Default())

	realm, err := dir.CreateRealm(ctx, directory.CreateRealmInput{
		RealmID:     "local",
		DisplayName: "Local Development",
	})
	if err != nil {
		return fmt.Errorf("seed realm: %w", err)
	}
	fmt.Printf("realm: %s\n", realm.RealmID)

	user, err := dir.RegisterUser(ctx, directory.RegisterUserInput{
		Name:     "Admin",
		Email:    "admin@local.test",
		Password: "changeme123",
	})
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	fmt.Printf("user: %s (%s)\n", user.Email, user.ID)

	if _, err := dir.AddToRealm(ctx, realm.RealmID, user.ID); err != nil {
		return fmt.Errorf("seed membership: %w", err)
	}

	client, err := dir.CreateClient(ctx, directory.CreateClientInput{
		RealmID:     realm.RealmID,
		Name:        "local-console",
		Description: "Seeded development client",
	})
	if err != nil {
		return fmt.Errorf("seed client: %w", err)
	}
	fmt.Printf("client: %s (%s)\n", client.Name, client.ID)

	fmt.Println("seed done")
	return nil
}

func storeConfig(cfg *config.Config) store.Config {
	var sc store.Config
	sc.Driver = cfg.Storage.Driver
	sc.Mongo.URI = cfg.Storage.Mongo.URI
	sc.Mongo.Database = cfg.Storage.Mongo.Database
	sc.Mongo.OpTimeout = cfg.OpTimeout()
	return sc
}

// buildLimiter arma el rate limiter del registro según config. Nil si
// está deshabilitado: el middleware lo trata como no-op.
func buildLimiter(cfg *config.Config) rate.Limiter {
	if !cfg.Rate.Enabled {
		return nil
	}

	window, err := time.ParseDuration(cfg.Rate.Register.Window)
	if err != nil || window <= 0 {
		window = time.Minute
	}

	if cfg.Rate.Kind == "redis" && cfg.Rate.Redis.Addr != "" {
		client := rdb.NewClient(&rdb.Options{
			Addr: cfg.Rate.Redis.Addr,
			DB:   cfg.Rate.Redis.DB,
		})
		return rate.NewRedisLimiter(client, cfg.Rate.Redis.Prefix, cfg.Rate.Register.Limit, window)
	}

	return rate.NewMemoryLimiter(cfg.Rate.Register.Limit, window)
}
