package health

import "context"

// DBPinger checks document store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// RepositoryChecker checks that the datastream repository answers.
type RepositoryChecker interface {
	HealthCheck(ctx context.Context) error
}
