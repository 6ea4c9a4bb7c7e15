package cart

import (
	"context"
	"database/sql"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

// PostgresBackend persists carts in a cart_items table; the position
// column preserves insertion order. Save replaces the namespace's rows
// in one transaction so a cart is never observed half-written.
//
// Schema:
//
//	CREATE TABLE cart_items (
//	    namespace  TEXT    NOT NULL,
//	    position   INT     NOT NULL,
//	    product_id BIGINT  NOT NULL,
//	    name       TEXT    NOT NULL,
//	    price      NUMERIC NOT NULL,
//	    image_url  TEXT    NOT NULL,
//	    quantity   INT     NOT NULL,
//	    PRIMARY KEY (namespace, product_id)
//	);
type PostgresBackend struct {
	db *sql.DB
}

func NewPostgresBackend(db *sql.DB) *PostgresBackend {
	return &PostgresBackend{db: db}
}

func (b *PostgresBackend) Load(ctx context.Context, ns string) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := b.db.QueryContext(ctx, `
		SELECT product_id, name, price, image_url, quantity
		FROM cart_items
		WHERE namespace = $1
		ORDER BY position ASC
	`, ns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, 8)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ProductID, &e.Name, &e.UnitPrice, &e.ImageURL, &e.Quantity); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (b *PostgresBackend) Save(ctx context.Context, ns string, entries []Entry) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := b.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE namespace = $1`, ns); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cart_items (namespace, position, product_id, name, price, image_url, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, ns, i, e.ProductID, e.Name, e.UnitPrice, e.ImageURL, e.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (b *PostgresBackend) Delete(ctx context.Context, ns string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := b.db.ExecContext(ctx, `DELETE FROM cart_items WHERE namespace = $1`, ns)
	return err
}

func (b *PostgresBackend) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return b.db.PingContext(ctx)
}
