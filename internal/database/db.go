// Package database opens the MySQL connection shared by the event,
// reservation and user repositories.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// Params carries the credentials, address and pool limits Open needs.
// The pool limits come from config so deployments can size the pool to
// their MySQL instance.
type Params struct {
	User string
	Pass string
	Host string
	Port string
	Name string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to MySQL, applies the pool limits and verifies
// connectivity before returning. Availability and check-in dates are
// DATE columns read as strings; parseTime and loc only matter for
// DATETIME columns, kept in UTC.
func Open(p Params) (*sql.DB, error) {
	auth := p.User
	if p.Pass != "" {
		auth = p.User + ":" + p.Pass
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, p.Host, p.Port, p.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(p.MaxOpenConns)
	db.SetMaxIdleConns(p.MaxIdleConns)
	db.SetConnMaxLifetime(p.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
