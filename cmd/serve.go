package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gazette-dev/gazette/internal/api"
	"github.com/gazette-dev/gazette/internal/core/service"
	"github.com/gazette-dev/gazette/internal/infrastructure/config"
	mongodb "github.com/gazette-dev/gazette/internal/infrastructure/db/mongo"
	"github.com/gazette-dev/gazette/internal/infrastructure/db/postgres"
	"github.com/gazette-dev/gazette/internal/infrastructure/db/postgres/migrations"
	redisdb "github.com/gazette-dev/gazette/internal/infrastructure/db/redis"
	httpserver "github.com/gazette-dev/gazette/internal/infrastructure/http"
	"github.com/gazette-dev/gazette/internal/infrastructure/http/handlers"
	"github.com/gazette-dev/gazette/internal/infrastructure/mail"
	"github.com/gazette-dev/gazette/internal/infrastructure/queue"
	"github.com/gazette-dev/gazette/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, _, err := loadConfig(ctx)
		if err != nil {
			fmt.Println("Unable to load configuration", err)
			os.Exit(1)
		}
		if err := serve(ctx, cfg); err != nil {
			log := logger.Get()
			log.Error().Err(err).Msg("server stopped with error")
			os.Exit(1)
		}
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// --- Postgres + schema bootstrap ---
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:          cfg.Postgres.DSN,
		MaxOpenConns: cfg.Postgres.MaxOpenConns,
		MaxIdleConns: cfg.Postgres.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	bootstrap := migrations.NewBootstrap(migrations.NewMigrator(db, logger.Component("migrations")), log)
	bootstrap.Start(ctx)

	// --- MongoDB audit log ---
	mongoClient, mongoDB, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongodb.Disconnect(mongoClient, shutdownTimeout) }()

	auditRepo := mongodb.NewAuditRepository(mongoDB, cfg.Mongo.AuditRetention)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("audit index creation failed")
	}

	// --- Redis article cache ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// Workers outlive ctx so events recorded during shutdown are still stored.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	audit := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, logger.Component("audit"))
	audit.Start(workerCtx)
	defer func() {
		stopWorkers()
		audit.Wait()
	}()

	// --- Services ---
	codec, err := service.NewSessionCodec([]byte(cfg.Session.Secret), cfg.Session.MaxAge, logger.Component("session"))
	if err != nil {
		return err
	}

	pool := postgres.NewPool(db, cfg.Postgres.AcquireTimeout)
	authService := service.NewAuthService(
		postgres.NewCredentialGateway(pool, logger.Component("credentials")),
		codec,
		mail.NewMailgunSender(mail.Config{
			APIBase: cfg.Mail.APIBase,
			Domain:  cfg.Mail.Domain,
			APIKey:  cfg.Mail.APIKey,
		}),
		mail.NewConfirmationTemplate(cfg.Mail.ConfirmationBaseURL, cfg.Mail.Domain),
		audit,
		logger.Component("auth"),
	)
	articleService := service.NewArticleService(
		postgres.NewArticleRepository(pool),
		redisdb.NewArticleCache(rdb, cfg.Redis.ArticleTTL),
		logger.Component("articles"),
	)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Auth:     authService,
		Articles: articleService,
		Codec:    codec,
		Schema:   bootstrap,
		Checks: map[string]handlers.Check{
			"postgres": handlers.PostgresCheck(db),
			"mongodb":  handlers.MongoCheck(mongoDB),
			"redis":    handlers.RedisCheck(rdb),
		},
		SessionMaxAge: codec.MaxAge(),
		CookieSecure:  cfg.Session.CookieSecure,
		Logger:        log,
	})
	srv := httpserver.NewServer(":"+cfg.Port, e, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Register the "serve" command
func init() {
	rootCmd.AddCommand(serveCmd)
}
