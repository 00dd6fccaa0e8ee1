package structs

import "time"

type Config struct {
	Server   *ServerConfig
	Cors     *CorsConfig
	Database *DatabaseConfig
	Auth     *AuthConfig
	Cache    *CacheConfig
	Email    *EmailConfig
	Bling    *BlingConfig
}

type ServerConfig struct {
	AppName        string        // Orcado
	Environment    string        // development, production
	Port           string        // :8084
	FrontendURL    string        // where the callback redirects after connecting
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type AuthConfig struct {
	TokenSecret string
	TokenExpiry time.Duration
	AdminEmails []string // accounts registered with these emails become admins
}

type CacheConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ProductTTL   time.Duration // product list cache
}

type EmailConfig struct {
	ApiKey       string
	From         string
	SupportEmail string
}

// BlingConfig holds the OAuth client credentials and endpoints for the Bling ERP.
// TokenURL and APIBase are overridable so tests can point them at local servers.
type BlingConfig struct {
	ClientID        string
	ClientSecret    string
	RedirectURI     string
	AuthorizeURL    string
	TokenURL        string
	APIBase         string
	PaymentMethodID int64         // forma de pagamento; 0 means not configured
	StateTTL        time.Duration // OAuth state nonce lifetime
}
