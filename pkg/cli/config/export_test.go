package config

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewDatabaseForTest creates a Database config for testing purposes
func NewDatabaseForTest(driver, dsn string) *Database {
	return &Database{
		driver: driver,
		dsn:    dsn,
	}
}

// NewDocumentStoreForTest creates a DocumentStore config for testing purposes
func NewDocumentStoreForTest(backend, projectID, databaseID, collectionPrefix string) *DocumentStore {
	return &DocumentStore{
		backend:          backend,
		projectID:        projectID,
		databaseID:       databaseID,
		collectionPrefix: collectionPrefix,
	}
}

// NewNotifyForTest creates a Notify config for testing purposes
func NewNotifyForTest(webhookURL, channel string) *Notify {
	return &Notify{
		webhookURL: webhookURL,
		channel:    channel,
	}
}

// NewAppConfigForTest creates an AppConfig bound to path
func NewAppConfigForTest(path string) *AppConfig {
	return &AppConfig{path: path}
}

var NewSecretFilter = newSecretFilter
