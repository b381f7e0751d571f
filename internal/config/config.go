package config

import (
	"errors"
	"fmt"
	"time"
)

type ServerConfig struct {
	Host               string        `yaml:"host" env:"SERVER_HOST"`
	Port               int           `yaml:"port" env:"SERVER_PORT"`
	Env                string        `yaml:"env" env:"SERVER_ENV"`
	RequestTimeout     time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT"`
	AccessGateFailOpen bool          `yaml:"access_gate_fail_open" env:"SERVER_ACCESS_GATE_FAIL_OPEN"`
	CORSOrigins        []string      `yaml:"cors_origins" env:"SERVER_CORS_ORIGINS" envSeparator:","`
}

type DatabaseConfig struct {
	DSN             string        `yaml:"url" env:"DATABASE_URL"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME"`
}

type JWTConfig struct {
	Secret        string `yaml:"secret" env:"JWT_SECRET"`
	Issuer        string `yaml:"issuer" env:"JWT_ISSUER"`
	Audience      string `yaml:"audience" env:"JWT_AUDIENCE"`
	AccessMinutes int    `yaml:"access_minutes" env:"JWT_ACCESS_MINUTES"`
	RefreshDays   int    `yaml:"refresh_days" env:"JWT_REFRESH_DAYS"`
}

type OTPConfig struct {
	TTL               time.Duration `yaml:"ttl" env:"OTP_TTL"`
	MaxVerifyAttempts int           `yaml:"max_verify_attempts" env:"OTP_MAX_VERIFY_ATTEMPTS"`
	AttemptWindow     time.Duration `yaml:"attempt_window" env:"OTP_ATTEMPT_WINDOW"`
	Retention         time.Duration `yaml:"retention" env:"OTP_RETENTION"`
}

type EmailConfig struct {
	Provider     string        `yaml:"provider" env:"EMAIL_PROVIDER"` // smtp, sendgrid, log
	SMTPHost     string        `yaml:"smtp_host" env:"EMAIL_SMTP_HOST"`
	SMTPPort     int           `yaml:"smtp_port" env:"EMAIL_SMTP_PORT"`
	SMTPUsername string        `yaml:"smtp_user" env:"EMAIL_SMTP_USER"`
	SMTPPassword string        `yaml:"smtp_password" env:"EMAIL_SMTP_PASSWORD"`
	FromEmail    string        `yaml:"from_email" env:"EMAIL_FROM"`
	FromName     string        `yaml:"from_name" env:"EMAIL_FROM_NAME"`
	SendGridKey  string        `yaml:"sendgrid_key" env:"EMAIL_SENDGRID_KEY"`
	SendTimeout  time.Duration `yaml:"send_timeout" env:"EMAIL_SEND_TIMEOUT"`
}

type StorageConfig struct {
	Type            string `yaml:"type" env:"STORAGE_TYPE"` // local, s3
	BaseURL         string `yaml:"base_url" env:"STORAGE_BASE_URL"`
	ImagesContainer string `yaml:"images_container" env:"STORAGE_IMAGES_CONTAINER"`
	BasePath        string `yaml:"base_path" env:"STORAGE_BASE_PATH"` // local only
	Region          string `yaml:"region" env:"STORAGE_REGION"`
	AccessKey       string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"`
	SecretKey       string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"`
	Endpoint        string `yaml:"endpoint" env:"STORAGE_ENDPOINT"`
}

type UploadConfig struct {
	MaxSizeMB    int `yaml:"max_size_mb" env:"UPLOAD_MAX_SIZE_MB"`
	JPEGQuality  int `yaml:"jpeg_quality" env:"UPLOAD_JPEG_QUALITY"`
	MaxDimension int `yaml:"max_dimension" env:"UPLOAD_MAX_DIMENSION"`
	// MaxPixels bounds width*height of an upload before it is decoded.
	MaxPixels int `yaml:"max_pixels" env:"UPLOAD_MAX_PIXELS"`
}

type MongoConfig struct {
	URI        string `yaml:"uri" env:"MONGO_URI"`
	Database   string `yaml:"database" env:"MONGO_DATABASE"`
	Collection string `yaml:"collection" env:"MONGO_COLLECTION"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

type TracingConfig struct {
	Endpoint    string `yaml:"endpoint" env:"TRACING_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"TRACING_SERVICE_NAME"`
}

type WorkersConfig struct {
	OTPCleanupSpec string `yaml:"otp_cleanup_spec" env:"WORKERS_OTP_CLEANUP_SPEC"`
}

// Config is built once at startup and handed to every constructor.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Email    EmailConfig    `yaml:"email"`
	Storage  StorageConfig  `yaml:"storage"`
	Upload   UploadConfig   `yaml:"upload"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Redis    RedisConfig    `yaml:"redis"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Workers  WorkersConfig  `yaml:"workers"`
}

// Default returns a configuration usable for local development.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			Env:            "development",
			RequestTimeout: 15 * time.Second,
			CORSOrigins:    []string{"*"},
		},
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		JWT: JWTConfig{
			Issuer:        "vibenet",
			Audience:      "vibenet-clients",
			AccessMinutes: 60,
			RefreshDays:   30,
		},
		OTP: OTPConfig{
			TTL:               10 * time.Minute,
			MaxVerifyAttempts: 5,
			AttemptWindow:     10 * time.Minute,
			Retention:         7 * 24 * time.Hour,
		},
		Email: EmailConfig{
			Provider:    "log",
			SMTPPort:    587,
			FromEmail:   "no-reply@vibenet.local",
			FromName:    "VibeNet",
			SendTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Type:            "local",
			BaseURL:         "http://localhost:8080/static",
			ImagesContainer: "profile-pictures",
			BasePath:        "./uploads",
		},
		Upload: UploadConfig{
			MaxSizeMB:    5,
			JPEGQuality:  85,
			MaxDimension: 1024,
			MaxPixels:    25_000_000,
		},
		Mongo: MongoConfig{
			Database:   "vibenet",
			Collection: "connections",
		},
		Tracing: TracingConfig{
			ServiceName: "vibenet-users",
		},
		Workers: WorkersConfig{
			OTPCleanupSpec: "@daily",
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.JWT.AccessMinutes <= 0 {
		errs = append(errs, errors.New("jwt.access_minutes must be positive"))
	}
	if c.JWT.RefreshDays <= 0 {
		errs = append(errs, errors.New("jwt.refresh_days must be positive"))
	}
	if c.OTP.TTL <= 0 {
		errs = append(errs, errors.New("otp.ttl must be positive"))
	}
	if c.OTP.MaxVerifyAttempts <= 0 {
		errs = append(errs, errors.New("otp.max_verify_attempts must be positive"))
	}
	if c.OTP.AttemptWindow <= 0 {
		errs = append(errs, errors.New("otp.attempt_window must be positive"))
	}
	if c.Upload.MaxSizeMB <= 0 {
		errs = append(errs, errors.New("upload.max_size_mb must be positive"))
	}
	if c.Upload.JPEGQuality < 1 || c.Upload.JPEGQuality > 100 {
		errs = append(errs, errors.New("upload.jpeg_quality must be between 1 and 100"))
	}
	if c.Upload.MaxPixels <= 0 {
		errs = append(errs, errors.New("upload.max_pixels must be positive"))
	}

	switch c.Email.Provider {
	case "smtp", "sendgrid":
	case "log":
		// The log provider writes OTP codes to the log.
		if c.IsProduction() {
			errs = append(errs, errors.New("email.provider log is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown email.provider %q", c.Email.Provider))
	}
	switch c.Storage.Type {
	case "local", "s3":
	default:
		errs = append(errs, fmt.Errorf("unknown storage.type %q", c.Storage.Type))
	}

	return errors.Join(errs...)
}
