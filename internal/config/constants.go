package config

// Constants defining default values for application configuration
const (
	DefaultDBPath    = "./wirenorm.db"
	DefaultSpoolDir  = "./spool"
	DefaultRulesPath = "" // Empty string means compiled-in rules

	DefaultServerPort = 8080
	DefaultServerHost = "" // Empty string means all interfaces

	DefaultWorkerCount   = 0  // 0 means use runtime.NumCPU()
	DefaultInterval      = 15 // Minutes between ingest runs
	DefaultRetentionDays = 0  // 0 disables purging

	DefaultLogLevel = "info"
)
