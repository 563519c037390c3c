// Package config reads service settings from the environment, loading a
// .env file first when one exists.
package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	CustomerService = "customer-service"
	ProductService  = "product-service"
	Worker          = "purchase-worker"
)

type DB struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// DSN renders a postgres URL understood by both lib/pq and pgx. Credentials
// and the database name are escaped.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

type Config struct {
	ServiceName     string
	HTTPPort        string
	ShutdownTimeout time.Duration
	DB              DB
	AMQPURL         string
	OTLPEndpoint    string
}

type defaults struct {
	port      string
	dbName    string
	dbNameKey string
}

var serviceDefaults = map[string]defaults{
	CustomerService: {port: "8090", dbName: "customers", dbNameKey: "CUSTOMERS_DB_NAME"},
	ProductService:  {port: "8050", dbName: "products", dbNameKey: "PRODUCTS_DB_NAME"},
	Worker:          {port: "8060", dbName: "products", dbNameKey: "PRODUCTS_DB_NAME"},
}

// Load returns the configuration of the named service.
func Load(service string) Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}
	return FromEnv(service)
}

// FromEnv is Load without touching .env files.
func FromEnv(service string) Config {
	def, ok := serviceDefaults[service]
	if !ok {
		def = defaults{port: "8080", dbName: service}
	}

	return Config{
		ServiceName:     getEnv("SERVICE_NAME", service),
		HTTPPort:        getEnv("HTTP_PORT", def.port),
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT", 15)) * time.Second,
		DB: DB{
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     dbName(def),
		},
		AMQPURL:      os.Getenv("AMQP_URL"),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

// DBFor returns the database settings of one service while ignoring the
// shared DB_NAME, so a tool touching several services never collapses them
// into one database.
func DBFor(service string) DB {
	db := FromEnv(service).DB
	def := serviceDefaults[service]

	db.Name = ownDBName(def)
	if db.Name == "" {
		db.Name = def.dbName
	}
	if db.Name == "" {
		db.Name = service
	}
	return db
}

// dbName prefers the service specific key, then DB_NAME, then the default.
func dbName(def defaults) string {
	if name := ownDBName(def); name != "" {
		return name
	}
	return getEnv("DB_NAME", def.dbName)
}

// ownDBName reads the service specific database name, e.g. PRODUCTS_DB_NAME.
func ownDBName(def defaults) string {
	if def.dbNameKey == "" {
		return ""
	}
	return os.Getenv(def.dbNameKey)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
