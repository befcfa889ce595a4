package core

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetStoreBackend() string
	GetCapacity() int
	GetHTTPAddr() string
}

type ProviderConfig interface {
	GetProvider() string
	GetModel() string
	GetAPIKey() string
	GetBaseURL() string
}
