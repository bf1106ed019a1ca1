package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "dispatchly"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv  = "DISPATCHLY_APP_ENV"
	EnvAppPort = "DISPATCHLY_APP_PORT"

	EnvDBDSN  = "DISPATCHLY_DB_DSN"
	EnvDBHost = "DISPATCHLY_DB_HOST"
	EnvDBUser = "DISPATCHLY_DB_USER"
	EnvDBName = "DISPATCHLY_DB_NAME"

	EnvRedisURL   = "DISPATCHLY_REDIS_URL"
	EnvJWTSecret  = "DISPATCHLY_JWT_SECRET"
	EnvJWTIssuer  = "DISPATCHLY_JWT_ISSUER"
	EnvJWTExpMins = "DISPATCHLY_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
