package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration
	ClientURL string

	// external collaborators
	GeocoderURL       string
	PaymentGatewayURL string
	UpstreamTimeout   time.Duration
}

func LoadConfig() *Config {
	// .env is optional; deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBSource:          getEnv("DB_SOURCE", "ridehail.db"),
		Port:              getEnv("PORT", "5000"),
		JWTSecret:         getEnv("JWT_SECRET", "changeme"),
		JWTTTL:            time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		ClientURL:         getEnv("CLIENT_URL", "http://localhost:3000"),
		GeocoderURL:       os.Getenv("GEOCODER_URL"),
		PaymentGatewayURL: getEnv("PAYMENT_GATEWAY_URL", "https://fakestoreapi.com/carts"),
		UpstreamTimeout:   time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 5)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func MustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("missing env: %s", key)
	}
	return v
}
