package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"studio/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName = "postgres"

	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxIdleTime    = 5 * time.Minute
)

// Connection holds the read replica and write primary pools. Anything that
// takes row locks must go through Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint is one side of the read/write split.
type Endpoint struct {
	Role     string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
	Timezone string
}

func New(config *config.Config) *Connection {
	read := config.DB.Postgres.Read
	write := config.DB.Postgres.Write

	return &Connection{
		Read: connect(Endpoint{
			Role: "read", Host: read.Host, Port: read.Port, Username: read.Username, Password: read.Password,
			Name: DBName(*config, read.Name), SSLMode: read.SSLMode, Timezone: read.Timezone,
		}, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
		Write: connect(Endpoint{
			Role: "write", Host: write.Host, Port: write.Port, Username: write.Username, Password: write.Password,
			Name: DBName(*config, write.Name), SSLMode: write.SSLMode, Timezone: write.Timezone,
		}, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
	}
}

// DBName returns the database name with prefix if configured.
func DBName(config config.Config, baseName string) string {
	return config.DB.Postgres.Prefix + baseName
}

// DSN renders the lib/pq URL. The session timezone is sent as a runtime
// parameter so timestamptz values come back in a predictable zone.
func (e Endpoint) DSN() string {
	query := url.Values{}
	if e.SSLMode != "" {
		query.Set("sslmode", e.SSLMode)
	}

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// connect retries until the database accepts connections. At least one
// attempt is always made; running out of attempts is fatal.
func connect(endpoint Endpoint, maxRetry, waitSeconds int) *sqlx.DB {
	attempts := max(1, maxRetry)
	logger := log.With().
		Str("name", endpoint.Role).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.Name).
		Logger()

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect(driverName, endpoint.DSN())
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxIdleTime(connMaxIdleTime)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		if attempt < attempts {
			time.Sleep(time.Duration(waitSeconds) * time.Second)
		}
	}

	logger.Fatal().Int("attempts", attempts).Msg("Giving up connecting to database")

	return nil
}

// Close releases both pools.
func (c *Connection) Close() {
	for _, db := range []*sqlx.DB{c.Read, c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}
}
