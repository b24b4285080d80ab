package globals

import (
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment-driven configuration, loaded once at startup.
var (
	Port              string
	AdminPassword     string
	JwtSecret         []byte
	MongoURI          string
	MongoDBName       string
	MailServiceURL    string
	MailServiceAPIKey string
	AdminEmails       []string
	PublicURL         string
	RedisURL          string
	RedisPassword     string
	AllowedOrigins    []string
	Production        bool
)

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	Port = getenv("PORT", "4000")
	AdminPassword = os.Getenv("ADMIN_PASSWORD")
	JwtSecret = []byte(getenv("JWT_SECRET", "change-me-before-production"))
	MongoURI = os.Getenv("MONGO_URI")
	MongoDBName = getenv("MONGO_DB_NAME", "mix_masters")
	MailServiceURL = getenv("MAIL_SERVICE_URL", "https://mailservice-tau.vercel.app/api/email/send")
	MailServiceAPIKey = os.Getenv("MAIL_SERVICE_API_KEY")
	AdminEmails = splitList(getenv("ADMIN_EMAILS", "admin@mixmasters.club"))
	PublicURL = strings.TrimRight(os.Getenv("PUBLIC_URL"), "/")
	RedisURL = os.Getenv("REDIS_URL")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	AllowedOrigins = append([]string{getenv("CORS_ORIGIN", "http://localhost:5173")}, splitList(os.Getenv("CORS_ORIGIN_LIST"))...)
	Production = os.Getenv("APP_ENV") == "production"
}

// OriginAllowed implements the CORS policy: everything is allowed outside
// production, localhost always passes, and in production the origin must match
// the configured list (trailing slashes ignored).
func OriginAllowed(origin string) bool {
	if !Production || origin == "" || strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1") {
		return true
	}

	normalized := strings.TrimRight(origin, "/")
	for _, allowed := range AllowedOrigins {
		if strings.TrimRight(allowed, "/") == normalized {
			return true
		}
	}

	return isDevTunnelOrigin(origin)
}

func isDevTunnelOrigin(origin string) bool {
	if Production {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.HasSuffix(u.Hostname(), ".devtunnels.ms")
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
