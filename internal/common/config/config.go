// Package config loads environment-driven settings shared by every service
// component. Values come from the process environment, optionally seeded from
// a .env file in the working directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	keyAppEnv           = "APP_ENV"
	keyDBHost           = "DB_HOST"
	keyDBPort           = "DB_PORT"
	keyDBUser           = "DB_USER"
	keyDBPassword       = "DB_PASSWORD"
	keyDBAdminName      = "DB_ADMIN_NAME"
	keyDBSSLMode        = "DB_SSLMODE"
	keyKafkaBrokers     = "KAFKA_BROKERS"
	keyKafkaGroupPrefix = "KAFKA_GROUP_PREFIX"
)

// DatabaseConfig describes how to reach the PostgreSQL server.
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	AdminDBName string
	SSLMode     string
}

// DSN returns a keyword/value connection string for the service database.
func (c DatabaseConfig) DSN() string {
	return c.dsnFor(c.DBName)
}

// AdminDSN returns a connection string for the administrative database used
// to create the service database when it is missing.
func (c DatabaseConfig) AdminDSN() string {
	return c.dsnFor(c.AdminDBName)
}

// DatabaseURL returns the service database as a postgres:// URL.
func (c DatabaseConfig) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

func (c DatabaseConfig) dsnFor(dbName string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		quoteDSNValue(c.Host), quoteDSNValue(c.Port), quoteDSNValue(c.User),
		quoteDSNValue(c.Password), quoteDSNValue(dbName), quoteDSNValue(c.SSLMode))
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteDSNValue single-quotes v with backslash escapes, so spaces and quotes
// in passwords survive keyword/value parsing.
func quoteDSNValue(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// KafkaConfig holds broker settings. An empty broker list disables eventing.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// Enabled reports whether at least one broker is configured.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// Load reads an optional .env file and returns a viper instance bound to the
// environment with the shared defaults applied.
func Load() (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(keyAppEnv, "development")
	v.SetDefault(keyDBHost, "localhost")
	v.SetDefault(keyDBPort, "5432")
	v.SetDefault(keyDBUser, "postgres")
	v.SetDefault(keyDBPassword, "federico")
	v.SetDefault(keyDBAdminName, "postgres")
	v.SetDefault(keyDBSSLMode, "disable")
	v.SetDefault(keyKafkaBrokers, "")
	v.SetDefault(keyKafkaGroupPrefix, "")
	return v, nil
}

// GetAppEnv returns the deployment environment name.
func GetAppEnv(v *viper.Viper) string {
	return v.GetString(keyAppEnv)
}

// GetServicePort returns the listen address stored under key, prefixing a
// colon when only a port number was supplied.
func GetServicePort(v *viper.Viper, key, fallback string) string {
	v.SetDefault(key, fallback)
	port := v.GetString(key)
	if !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}

// GetDuration returns the duration stored under key, or fallback when unset.
func GetDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	v.SetDefault(key, fallback)
	return v.GetDuration(key)
}

// LoadDatabaseConfig builds a DatabaseConfig; dbNameKey names the variable
// holding the service database name and defaultName is used when it is unset.
func LoadDatabaseConfig(v *viper.Viper, dbNameKey, defaultName string) DatabaseConfig {
	v.SetDefault(dbNameKey, defaultName)
	return DatabaseConfig{
		Host:        v.GetString(keyDBHost),
		Port:        v.GetString(keyDBPort),
		User:        v.GetString(keyDBUser),
		Password:    v.GetString(keyDBPassword),
		DBName:      v.GetString(dbNameKey),
		AdminDBName: v.GetString(keyDBAdminName),
		SSLMode:     v.GetString(keyDBSSLMode),
	}
}

// LoadKafkaConfig parses the comma-separated broker list.
func LoadKafkaConfig(v *viper.Viper) KafkaConfig {
	var brokers []string
	for _, b := range strings.Split(v.GetString(keyKafkaBrokers), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return KafkaConfig{
		Brokers:     brokers,
		GroupPrefix: v.GetString(keyKafkaGroupPrefix),
	}
}
