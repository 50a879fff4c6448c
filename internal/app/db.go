package app

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/esport-datanal/internal/config"
)

const (
	dbPingTimeout = 5 * time.Second

	// Statements longer than this are cut in span attributes.
	maxTracedStatementLen = 512
)

// openPostgres opens a traced sqlx pool and checks connectivity.
func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", cfg.PostgresDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(config.DatabaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceStatement),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.CycleWorkers + 4)
	db.SetMaxIdleConns(cfg.CycleWorkers)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// traceStatement collapses whitespace so multi-line statements read as one
// line in span attributes.
func traceStatement(query string) string {
	s := strings.Join(strings.Fields(query), " ")
	if len(s) <= maxTracedStatementLen {
		return s
	}
	cut := maxTracedStatementLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
