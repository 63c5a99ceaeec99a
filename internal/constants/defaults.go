// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used when configuration
// omits a setting. Changes to these values affect every deployment that relies
// on the defaults, so they are kept in one place.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultDBDriver is the database/sql driver used when none is configured.
	DefaultDBDriver = DriverPostgres

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 10

	// DefaultDBMinConnections is the default number of idle database connections.
	DefaultDBMinConnections = 2

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultDraftBackend selects where draft slots are persisted.
	DefaultDraftBackend = DraftBackendDatabase

	// DefaultDraftDir is the directory used by the file draft backend.
	DefaultDraftDir = "./data/drafts"
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Database drivers accepted in configuration.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Draft backends accepted in configuration.
const (
	DraftBackendMemory   = "memory"
	DraftBackendFile     = "file"
	DraftBackendDatabase = "database"
)

// Request body limits.
const (
	// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
	// Site snapshots carry embed markup for every module, hence the generous limit.
	MaxRequestBodySize = 4 << 20
)

// Default Password Hash Settings define the parameters for Argon2id password hashing.
const (
	// DefaultPasswordHashMemory is the memory cost parameter for Argon2id hashing.
	DefaultPasswordHashMemory = 64 * 1024

	// DefaultPasswordHashIterations is the number of iterations for Argon2id hashing.
	DefaultPasswordHashIterations = 3

	// DefaultPasswordHashParallelism is the parallelism parameter for Argon2id hashing.
	DefaultPasswordHashParallelism = 2

	// DefaultPasswordHashSaltLength is the length in bytes of the random salt.
	DefaultPasswordHashSaltLength = 16

	// DefaultPasswordHashKeyLength is the length in bytes of the generated hash.
	DefaultPasswordHashKeyLength = 32

	// DevPasswordHashMemory is a reduced memory setting for development environments.
	DevPasswordHashMemory = 16 * 1024

	// DevPasswordHashIterations is a reduced iteration count for development environments.
	DevPasswordHashIterations = 1
)

// Auth Constants define values related to identity tokens.
const (
	// DefaultJWTIssuer is the issuer claim value for JWT tokens.
	DefaultJWTIssuer = "coursesite-api"

	// BearerTokenPrefix is the prefix for Authorization header bearer tokens.
	BearerTokenPrefix = "Bearer "
)

// Publishing defaults mirror the build pipeline of the site repository.
const (
	// DefaultGitHubAPIURL is the base URL of the source-control hosting API.
	DefaultGitHubAPIURL = "https://api.github.com"

	// DefaultPublishPath is the repository file that holds the content baseline.
	DefaultPublishPath = "src/data/initialData.ts"

	// DefaultCommitMessage is the fixed message used for content commits.
	DefaultCommitMessage = "feat(content): Automated content update via CMS [skip ci]"

	// DefaultCommitterName is the commit author identity name.
	DefaultCommitterName = "Course Admin Bot"

	// DefaultCommitterEmail is the commit author identity email.
	DefaultCommitterEmail = "bot@netlify.app"

	// ExportFileName is the download name of the local export artifact.
	ExportFileName = "initialData.ts"
)

// Rate limiting defaults, in requests per second and burst size.
const (
	DefaultRateLimitRPS   = 2.0
	DefaultRateLimitBurst = 10
)
