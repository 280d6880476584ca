package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Store string // postgres | memory

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr string
	RedisPwd  string

	WebOrigin  string
	SessionTTL time.Duration

	// LateFeePerBookDay is the fine per copy per day past due, in Rupiah.
	LateFeePerBookDay int64
	// LoanPeriodDays is how long a confirmed borrowing runs before it is due.
	LoanPeriodDays int
}

// LoadEnv reads .env if present; real env vars win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}
}

func Load() Config {
	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}

	ttl := time.Duration(getInt("SESSION_TTL_SECONDS", 86400)) * time.Second

	store := strings.ToLower(get("STORE", StorePostgres))
	if store != StorePostgres && store != StoreMemory {
		log.Printf("unknown STORE %q, using %s", store, StorePostgres)
		store = StorePostgres
	}

	return Config{
		Store:             store,
		DBHost:            get("DB_HOST", "127.0.0.1"),
		DBPort:            get("DB_PORT", "5432"),
		DBUser:            get("DB_USER", "postgres"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            get("DB_NAME", "smartlib"),
		RedisAddr:         get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:          os.Getenv("REDIS_PASSWORD"),
		WebOrigin:         get("WEB_ORIGIN", "http://localhost:5173"),
		SessionTTL:        ttl,
		LateFeePerBookDay: int64(getInt("LATE_FEE_PER_BOOK_DAY", 2000)),
		LoanPeriodDays:    getInt("LOAN_PERIOD_DAYS", 7),
	}
}
