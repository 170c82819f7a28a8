package dbtx

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bxcodec/dbresolver/v2"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// Pool is a hub for primary/replica postgres connections, analogous to
// the teacher's mpostgres.PostgresConnection but exposing the Executor/
// Beginner contract dbtx needs instead of a bare dbresolver.DB.
type Pool struct {
	PrimaryDSN string
	ReplicaDSN string

	// MaxOpenConns bounds each underlying *sql.DB; zero means unbounded,
	// matching database/sql's own default.
	MaxOpenConns int

	resolver dbresolver.DB
}

// Connect opens the primary and (optional) replica connections and wires
// them behind a round-robin dbresolver. If ReplicaDSN is empty the
// primary also serves reads.
func (p *Pool) Connect() error {
	primary, err := sql.Open("pgx", p.PrimaryDSN)
	if err != nil {
		return fmt.Errorf("open primary: %w", err)
	}

	replicaDSN := p.ReplicaDSN
	if replicaDSN == "" {
		replicaDSN = p.PrimaryDSN
	}

	replica, err := sql.Open("pgx", replicaDSN)
	if err != nil {
		return fmt.Errorf("open replica: %w", err)
	}

	if p.MaxOpenConns > 0 {
		primary.SetMaxOpenConns(p.MaxOpenConns)
		replica.SetMaxOpenConns(p.MaxOpenConns)
	}

	p.resolver = dbresolver.New(
		dbresolver.WithPrimaryDBs(primary),
		dbresolver.WithReplicaDBs(replica),
		dbresolver.WithLoadBalancer(dbresolver.RoundRobinLB),
	)

	return p.resolver.Ping()
}

// Executor returns the pool as an Executor, used by query-side repository
// methods outside of any transaction (they prefer the replica).
func (p *Pool) Executor() Executor {
	return p.resolver
}

// BeginTx implements Beginner; it always begins on the primary, since
// dbresolver routes write transactions there.
func (p *Pool) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return p.resolver.BeginTx(ctx, opts)
}
