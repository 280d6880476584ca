package app

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"smartlib/cart"
	"smartlib/circulation"
	"smartlib/config"
	"smartlib/db"
	"smartlib/session"
)

// Aliases so handlers read a little shorter.
type Ctx = gin.Context
type H = gin.H

// App aggregates the wired dependencies. Which circulation store backs
// it is the only thing that varies between the postgres and the
// in-memory variant; everything downstream sees the same ports.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB // nil when running on the memory store
	RDB    *redis.Client
	Config config.Config
	Log    *zap.Logger

	Circ       *circulation.Service
	Users      db.UserStore
	Activities db.ActivityStore
	Carts      *cart.Store

	appSess *session.AppSessionStore
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

func MustNew() *App {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	// --- Redis (sessions + carts) ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- Stores ---
	var (
		conn       *gorm.DB
		circStore  circulation.Store
		users      db.UserStore
		activities db.ActivityStore
	)
	switch cfg.Store {
	case config.StorePostgres:
		conn, err = db.ConnectDB(cfg)
		if err == nil {
			repo := db.NewRepo(conn)
			circStore, users, activities = db.NewStore(conn), repo, repo
			break
		}
		// Database down is not fatal: run the demo on the memory
		// variant until it comes back.
		logger.Warn("database unreachable, running on memory store", zap.Error(err))
		fallthrough
	case config.StoreMemory:
		mem := db.NewMemRepo()
		circStore, users, activities = db.NewMemStore(), mem, mem
	}

	circ := circulation.NewService(circStore, circulation.Config{
		LateFeePerBookDay: cfg.LateFeePerBookDay,
		LoanPeriodDays:    cfg.LoanPeriodDays,
	}, logger)

	boot, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer bootCancel()
	circ.Load(boot, db.SeedBooks())
	circ.SeedIfEmpty(boot, db.SeedBooks())
	if err := db.SeedUsers(boot, users); err != nil {
		logger.Warn("seeding demo accounts failed", zap.Error(err))
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	return &App{
		Router:     r,
		DB:         conn,
		RDB:        rdb,
		Config:     cfg,
		Log:        logger,
		Circ:       circ,
		Users:      users,
		Activities: activities,
		Carts:      cart.NewStore(rdb, cfg.SessionTTL),
		appSess:    session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
}

func (a *App) Close() {
	_ = a.RDB.Close()
	_ = a.Log.Sync()
}
