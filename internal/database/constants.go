package database

import "time"

// Connection pool tuning
const (
	// DefaultMinConnections keeps a couple of warm connections so the first
	// scan after an idle period does not pay the handshake cost.
	DefaultMinConnections = 2

	// PingTimeout bounds the startup connectivity check.
	PingTimeout = 5 * time.Second
)

// Error messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)

// Log messages
const (
	LogMsgConnectedToDatabase = "Connected to the database"
)
