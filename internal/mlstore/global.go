package mlstore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/beastmode/notable/internal/contract"
	"github.com/beastmode/notable/schema"
)

// MLStoreManager coordinates access to the shared prediction store and
// model registry. A single SQL store serves both interfaces.
type MLStoreManager struct {
	sync.Mutex
	store *MLStoreImpl
}

var _ contract.StoreManager = &MLStoreManager{}

// GetPredictionStore returns the prediction store, or nil if uninitialized.
func (m *MLStoreManager) GetPredictionStore() contract.PredictionStore {
	m.Lock()
	defer m.Unlock()
	if m.store == nil {
		return nil
	}
	return m.store
}

// GetModelRegistry returns the model registry, or nil if uninitialized.
func (m *MLStoreManager) GetModelRegistry() contract.ModelRegistry {
	m.Lock()
	defer m.Unlock()
	if m.store == nil {
		return nil
	}
	return m.store
}

// Global Manager instance for main logic.
var (
	Manager   = &MLStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for the store.
func GetDBFilePath() string {
	return contract.GetStoreDBFilePath()
}

// InitStore initializes the global store manager. An empty backend
// disables the store entirely.
func InitStore(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		if backend == "" {
			return
		}
		store, err := NewMLStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize prediction store: %w", err)
			return
		}
		Manager.Lock()
		defer Manager.Unlock()
		Manager.store = store
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// ClearStore clears the prediction and model data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the tables.
// For NoneBackend, it does nothing.
func ClearStore(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return dropStoreTables("mysql", connStr)

	case schema.PostgreSQLBackend:
		return dropStoreTables("pgx", connStr)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported store backend for clearing: %s", backend)
	}
}

// dropStoreTables connects to the SQL database and drops the store tables.
func dropStoreTables(driverName, connStr string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, table := range []string{predictionsTable, modelsTable} {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
