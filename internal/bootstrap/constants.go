package bootstrap

// Log messages for application startup and shutdown
const (
	LogMsgStartingFeedspin     = "Starting feedspin"
	LogMsgConfigurationLoaded  = "Configuration loaded"
	LogMsgDatabaseConnected    = "Database connection established"
	LogMsgSchemaApplied        = "Database schema applied"
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgServerStopped        = "Server stopped"
	LogMsgDatabasePoolClosed   = "Database pool closed"
)
