package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"
	"github.com/takoapp/tako/internal/audit"
	"github.com/takoapp/tako/internal/auth"
	"github.com/takoapp/tako/internal/common"
	"github.com/takoapp/tako/internal/config"
	"github.com/takoapp/tako/internal/handlers/api"
	"github.com/takoapp/tako/internal/logging"
	"github.com/takoapp/tako/internal/middlewares"
	"github.com/takoapp/tako/internal/realip"
	"github.com/takoapp/tako/internal/records"
	"github.com/takoapp/tako/internal/store"
	"github.com/takoapp/tako/internal/tokens"
	"github.com/takoapp/tako/model"
	"github.com/takoapp/tako/params"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "tako - IP-range authentication and log ingestion gateway for a record store"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func mustInitLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func mustInitDatabase(dbConfig config.MySQLConfig) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dbConfig.Dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dbConfig.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := model.AutoMigrate(db); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	return db
}

func mustInitRedisStorage(redisCfg config.RedisConfig) *fiberredis.Storage {
	return fiberredis.New(fiberredis.Config{
		URL:           redisCfg.URL,
		PoolSize:      redisCfg.PoolSize,
		IsClusterMode: redisCfg.ClusterMode,
	})
}

func mustInitMasterKey(cfg *config.Config) string {
	if cfg.MasterKey != "" {
		return cfg.MasterKey
	}
	// tokens signed with an ephemeral key do not survive a restart
	key, err := common.GenerateSecret(32)
	if err != nil {
		slog.Error("Failed to generate master key", "error", err)
		os.Exit(1)
	}
	slog.Warn("No masterKey configured, using an ephemeral key")
	return key
}

func setupAPIRoutes(
	router fiber.Router,
	resolver *realip.Resolver,
	issuer *tokens.Issuer,
	ipAuthService *auth.IPAuthService,
	adminService *auth.AdminService,
	sink logging.Sink) {

	// handlers
	var (
		recordAuthHandler = api.NewRecordAuthHandler(ipAuthService, resolver)
		adminHandler      = api.NewAdminHandler(adminService, resolver)
		logsHandler       = api.NewLogsHandler(sink)
	)

	// routes
	router.Post("/collections/:collection/auth-with-ip", recordAuthHandler.PostAuthWithIP)
	router.Post("/admins/auth-with-password", adminHandler.PostAuthWithPassword)
	router.Post("/logs", middlewares.RequireAdmin(issuer), logsHandler.PostLogs)
}

func run(ctx *cli.Context) error {
	cfg, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}

	mustInitLogger(cfg.Debug || ctx.IsSet(debugFlag.Name))

	db := mustInitDatabase(cfg.MySQL)

	var sessionStorage store.Storage
	var redisStorage *fiberredis.Storage
	if cfg.Redis.URL != "" {
		redisStorage = mustInitRedisStorage(cfg.Redis)
		sessionStorage = store.NewRedisStorage(redisStorage.Conn())
	} else {
		slog.Warn("No redis configured, sessions are kept in process memory")
		sessionStorage = store.NewMemoryStorage()
	}

	// collaborators and services
	var (
		masterKey     = mustInitMasterKey(cfg)
		resolver      = realip.NewResolver(cfg.ClientIP.ProxyHeader, cfg.ClientIP.TrustedProxies)
		recordStore   = records.NewGormStore(db)
		auditRecorder = audit.NewAuditEventRepository(db)
		issuer        = tokens.NewIssuer(masterKey, sessionStorage, cfg.Token.RecordTokenMaxAge, cfg.Token.AdminTokenMaxAge)
		ipAuthService = auth.NewIPAuthService(recordStore, issuer, auditRecorder)
		adminService  = auth.NewAdminService(db, issuer, auditRecorder)
		logSink       = logging.NewSlogSink(slog.Default())
	)

	if cfg.Bootstrap.AdminEmail != "" && cfg.Bootstrap.AdminPassword != "" {
		if err := adminService.EnsureAdmin(ctx.Context, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword); err != nil {
			slog.Error("Failed to create bootstrap admin", "error", err)
			return err
		}
	}

	router := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		BodyLimit:     params.ServerBodyLimit,
		IdleTimeout:   params.ServerIdleTimeout,
		ReadTimeout:   params.ServerReadTimeout,
		WriteTimeout:  params.ServerWriteTimeout,
		ErrorHandler:  middlewares.ErrorHandler,
	})

	router.Use(recover.New())
	router.Use(logger.New())
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	setupAPIRoutes(router, resolver, issuer, ipAuthService, adminService, logSink)

	var rdbConn redis.UniversalClient
	if redisStorage != nil {
		rdbConn = redisStorage.Conn()
	}
	healthCheckCtx, term := context.WithCancel(ctx.Context)
	done := make(chan struct{})
	go common.StartHealthCheckServer(healthCheckCtx, done, rdbConn, db)
	defer func() {
		term()
		<-done
	}()
	return router.Listen(cfg.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
