package database

import "errors"

var (
	// ErrNotReady is returned by Ping before the startup hook has connected
	// and migrated, and after shutdown.
	ErrNotReady = errors.New("database not ready")
	// ErrDirtySchema reports a migration that failed part way and needs
	// manual repair with cmd/migrate -force.
	ErrDirtySchema = errors.New("schema version is dirty")
)
