package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret string `envconfig:"ACCESS_SECRET"`
		Issuer       string `envconfig:"ISSUER"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			BookingCreated       string `envconfig:"BOOKING_CREATED"       default:"booking.created"`
			BookingStatusChanged string `envconfig:"BOOKING_STATUS_CHANGED" default:"booking.status_changed"`
			SettlementCreated    string `envconfig:"SETTLEMENT_CREATED"    default:"settlement.created"`
			SettlementValidated  string `envconfig:"SETTLEMENT_VALIDATED"  default:"settlement.validated"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Booking struct {
		MinimumValue float64 `envconfig:"MINIMUM_VALUE" default:"400"`
	} `envconfig:"BOOKING"`

	Commission struct {
		GuestRate           float64 `envconfig:"GUEST_RATE"            default:"0.30"`
		ResidentInitialRate float64 `envconfig:"RESIDENT_INITIAL_RATE" default:"0.30"`
		ResidentReducedRate float64 `envconfig:"RESIDENT_REDUCED_RATE" default:"0.20"`
		ResidentThreshold   float64 `envconfig:"RESIDENT_THRESHOLD"    default:"10000"`
	} `envconfig:"COMMISSION"`

	Coupon struct {
		LeadPrefix              string  `envconfig:"LEAD_PREFIX"               default:"KRONOS10_"`
		LeadDiscountPercent     int     `envconfig:"LEAD_DISCOUNT_PERCENT"     default:"10"`
		ReferralPrefix          string  `envconfig:"REFERRAL_PREFIX"           default:"KAI"`
		ReferralDiscountPercent int     `envconfig:"REFERRAL_DISCOUNT_PERCENT" default:"10"`
		ReferralBonus           float64 `envconfig:"REFERRAL_BONUS"            default:"0"`
	} `envconfig:"COUPON"`

	Settlement struct {
		ApprovalThreshold float64 `envconfig:"APPROVAL_THRESHOLD" default:"0.9"`
		ProofDirectory    string  `envconfig:"PROOF_DIRECTORY"    default:"settlements"`
		Worker            struct {
			IntervalSeconds int `envconfig:"INTERVAL_SECONDS" default:"15"`
			BatchSize       int `envconfig:"BATCH_SIZE"       default:"10"`
			MaxAttempts     int `envconfig:"MAX_ATTEMPTS"     default:"5"`
			BackoffSeconds  int `envconfig:"BACKOFF_SECONDS"  default:"30"`
			TimeoutSeconds  int `envconfig:"TIMEOUT_SECONDS"  default:"20"`
		} `envconfig:"WORKER"`
	} `envconfig:"SETTLEMENT"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
