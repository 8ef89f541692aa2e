package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Options struct {
	runAddr        string
	logLevel       string
	dataBaseDSN    string
	catalogFile    string
	goldAPIURL     string
	goldAPITimeout time.Duration
	corsOrigins    string
}

func NewOptions() *Options {
	return new(Options)
}

// ParseFlags handles command line arguments
// and stores their values in the corresponding variables.
func (o *Options) ParseFlags() {
	// Load environment variables from the .env file
	loadEnvFile()

	// Override variable values with values from command line flags
	regStringVar(&o.runAddr, "a", getEnvOrDefault("RUN_ADDRESS", ":5000"), "address and port to run server")
	regStringVar(&o.logLevel, "l", getEnvOrDefault("LOG_LEVEL", "info"), "log level")
	regStringVar(&o.dataBaseDSN, "d", getEnvOrDefault("DATABASE_URI", ""), "database connection string")
	regStringVar(&o.catalogFile, "f", getEnvOrDefault("CATALOG_FILE", "products.json"), "path to the catalog json file")
	regStringVar(&o.goldAPIURL, "g", getEnvOrDefault("GOLD_API_URL", "https://api.metals.live/v1/spot"), "gold spot price feed url")
	regStringVar(&o.corsOrigins, "o", getEnvOrDefault("CORS_ORIGINS", "*"), "comma-separated list of allowed CORS origins")
	flag.DurationVar(&o.goldAPITimeout, "t", getDurationOrDefault("GOLD_API_TIMEOUT", 5*time.Second), "timeout for the gold spot price request")

	// parse the arguments passed to the server into registered variables
	flag.Parse()
}

func (o *Options) RunAddr() string {
	return o.runAddr
}

func (o *Options) LogLevel() string {
	return o.logLevel
}

func (o *Options) DataBaseDSN() string {
	return o.dataBaseDSN
}

func (o *Options) CatalogFile() string {
	return o.catalogFile
}

func (o *Options) GoldAPIURL() string {
	return o.goldAPIURL
}

func (o *Options) GoldAPITimeout() time.Duration {
	return o.goldAPITimeout
}

func (o *Options) CorsOrigins() string {
	return o.corsOrigins
}

func regStringVar(p *string, name string, value string, usage string) {
	flag.StringVar(p, name, value, usage)
}

// getEnvOrDefault reads an environment variable or returns a default value if the variable is not set or is empty.
func getEnvOrDefault(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getDurationOrDefault reads a duration environment variable ("5s", "1m") or
// returns a default value if the variable is not set or malformed.
func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// loadEnvFile loads environment variables from a .env file
func loadEnvFile() {
	// Load environment variables from the .env file in the working directory
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file found, proceeding without it")
	}
}
