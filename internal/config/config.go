package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const minSecretLength = 32

type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Postgres PostgresConfig `env:",prefix=POSTGRES_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`
	JWT      JWTConfig      `env:",prefix=JWT_"`
	Security SecurityConfig `env:",prefix="`
	CORS     CORSConfig     `env:",prefix=CORS_"`
	Cookie   CookieConfig   `env:",prefix=COOKIE_"`
	S3       S3Config       `env:",prefix=S3_"`
	Upload   UploadConfig   `env:",prefix=UPLOAD_"`
	Env      string         `env:"ENV,default=development"`
}

type ServerConfig struct {
	Port         string   `env:"PORT,default=8000"`
	Host         string   `env:"HOST,default=0.0.0.0"`
	ReadTimeout  Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout Duration `env:"WRITE_TIMEOUT,default=60s"`
}

type PostgresConfig struct {
	Host          string `env:"HOST,default=localhost"`
	Port          string `env:"PORT,default=5432"`
	User          string `env:"USER,default=videotube"`
	Password      string `env:"PASSWORD,default=videotube_password"`
	DBName        string `env:"DB,default=videotube"`
	SSLMode       string `env:"SSLMODE,default=disable"`
	MigrateOnBoot bool   `env:"MIGRATE_ON_BOOT,default=true"`
}

type RedisConfig struct {
	Host        string   `env:"HOST,default=localhost"`
	Port        string   `env:"PORT,default=6379"`
	Password    string   `env:"PASSWORD,default="`
	DB          int      `env:"DB,default=0"`
	PoolSize    int      `env:"POOL_SIZE,default=10"`
	DialTimeout Duration `env:"DIAL_TIMEOUT,default=5s"`
	KeyPrefix   string   `env:"KEY_PREFIX,default=videotube"`
}

// JWTConfig holds signing material for the two token kinds.
// Access and refresh tokens must be signed with different secrets.
type JWTConfig struct {
	AccessSecret       string   `env:"ACCESS_SECRET,required"`
	RefreshSecret      string   `env:"REFRESH_SECRET,required"`
	AccessTokenExpiry  Duration `env:"ACCESS_TOKEN_EXPIRY,default=15m"`
	RefreshTokenExpiry Duration `env:"REFRESH_TOKEN_EXPIRY,default=10d"`
}

type SecurityConfig struct {
	BCryptCost        int      `env:"BCRYPT_COST,default=10"`
	RateLimitRequests int      `env:"RATE_LIMIT_REQUESTS,default=10"`
	RateLimitWindow   Duration `env:"RATE_LIMIT_WINDOW,default=1m"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	AllowedMethods []string `env:"ALLOWED_METHODS,default=GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders []string `env:"ALLOWED_HEADERS,default=Content-Type,Authorization"`
}

// CookieConfig controls the session cookies. Secure can only be turned off
// for local development over plain HTTP.
type CookieConfig struct {
	Secure bool   `env:"SECURE,default=true"`
	Domain string `env:"DOMAIN,default="`
}

type S3Config struct {
	Bucket          string `env:"BUCKET,default=videotube"`
	Region          string `env:"REGION,default=us-east-1"`
	Endpoint        string `env:"ENDPOINT,default="`
	PublicBaseURL   string `env:"PUBLIC_BASE_URL,default="`
	AccessKeyID     string `env:"ACCESS_KEY_ID,default="`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY,default="`
}

type UploadConfig struct {
	TempDir string `env:"TEMP_DIR,default=./public/temp"`
	MaxSize int64  `env:"MAX_SIZE,default=209715200"`
}

// DSN returns PostgreSQL connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode)
}

// URL returns the PostgreSQL connection string in URL form, as expected by migrate
func (p PostgresConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

// Address returns Redis connection address
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func (j JWTConfig) validate() error {
	if len(j.AccessSecret) < minSecretLength {
		return fmt.Errorf("JWT_ACCESS_SECRET must be at least %d characters long", minSecretLength)
	}
	if len(j.RefreshSecret) < minSecretLength {
		return fmt.Errorf("JWT_REFRESH_SECRET must be at least %d characters long", minSecretLength)
	}
	if j.AccessSecret == j.RefreshSecret {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if j.AccessTokenExpiry.Duration <= 0 || j.RefreshTokenExpiry.Duration <= 0 {
		return errors.New("token expiries must be positive")
	}
	return nil
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first when present.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var config Config

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &config,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.JWT.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
