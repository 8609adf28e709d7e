package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// PackingTimeout is the inactivity threshold after which a packing
	// session counts as abandoned.
	PackingTimeout time.Duration

	// PackingSweepInterval is how often the timeout sweep runs.
	PackingSweepInterval time.Duration
}
