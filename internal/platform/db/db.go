package db

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	driverName = "mysql"
	envPrefix  = "GAMEVAULT_"
)

type DatabaseConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"user"`
	Password       string `yaml:"password"`
	DBName         string `yaml:"dbname"`
	MaxOpenConns   int    `yaml:"max_open_conns"`
	MaxIdleConns   int    `yaml:"max_idle_conns"`
	MigrateOnStart bool   `yaml:"migrate_on_start"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// 両方指定時のみ TLS で待ち受ける
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

type OrdersConfig struct {
	// "procedure"（既定）or "inline"
	Placement string `yaml:"placement"`
}

type RentalsConfig struct {
	TimeZone string `yaml:"timezone"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Version string         `yaml:"version"`
	Mode    string         `yaml:"mode"`
	Server  ServerConfig   `yaml:"server"`
	DB      DatabaseConfig `yaml:"database"`
	Orders  OrdersConfig   `yaml:"orders"`
	Rentals RentalsConfig  `yaml:"rentals"`
	Log     LogConfig      `yaml:"log"`
}

// LoadConfig reads the yaml file, then lets GAMEVAULT_* variables (optionally
// from a .env file) override it.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Config{
		Mode:    "release",
		Server:  ServerConfig{Addr: ":8080"},
		DB:      DatabaseConfig{Host: "127.0.0.1", Port: 3306, MaxOpenConns: 4},
		Orders:  OrdersConfig{Placement: "procedure"},
		Rentals: RentalsConfig{TimeZone: "UTC"},
		Log:     LogConfig{Level: "info"},
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	setStr := func(key string, dst *string) {
		if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	setStr("MODE", &cfg.Mode)
	setStr("ADDR", &cfg.Server.Addr)
	setStr("DB_HOST", &cfg.DB.Host)
	setStr("DB_USER", &cfg.DB.Username)
	setStr("DB_PASSWORD", &cfg.DB.Password)
	setStr("DB_NAME", &cfg.DB.DBName)
	setStr("ORDER_PLACEMENT", &cfg.Orders.Placement)
	setStr("TIMEZONE", &cfg.Rentals.TimeZone)
	setStr("LOG_LEVEL", &cfg.Log.Level)

	if v, ok := os.LookupEnv(envPrefix + "DB_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sDB_PORT %q: %w", envPrefix, v, err)
		}
		cfg.DB.Port = port
	}
	if v, ok := os.LookupEnv(envPrefix + "MIGRATE_ON_START"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sMIGRATE_ON_START %q: %w", envPrefix, v, err)
		}
		cfg.DB.MigrateOnStart = b
	}
	return nil
}

// DSN builds the driver DSN. DATE columns come back as midnight UTC.
func (c DatabaseConfig) DSN() string {
	return c.driverConfig().FormatDSN()
}

// migrationDSN allows several statements per migration file.
func (c DatabaseConfig) migrationDSN() string {
	mc := c.driverConfig()
	mc.MultiStatements = true
	return mc.FormatDSN()
}

func (c DatabaseConfig) driverConfig() *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	mc.DBName = c.DBName
	mc.ParseTime = true
	// RowsAffected は一致した行数（値が同じでも 1）
	mc.ClientFoundRows = true
	mc.Loc = time.UTC
	mc.Timeout = 3 * time.Second
	mc.ReadTimeout = 5 * time.Second
	mc.WriteTimeout = 5 * time.Second
	return mc
}

// Connect opens the handle and verifies credentials once.
func Connect(c DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(driverName, c.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// 操作ごとに接続を取得・解放する。アイドル接続は保持しない（既定 0）
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	db.SetMaxIdleConns(c.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}
