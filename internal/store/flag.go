package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const flagsTable = "flags"

// flagRepo implements FlagRepo with the ent SQL builder.
type flagRepo struct {
	drv *entsql.Driver
}

func (r *flagRepo) IsSet(ctx context.Context, name string) (bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("name").
		From(entsql.Table(flagsTable)).
		Where(entsql.EQ("name", name)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return false, fmt.Errorf("query flag %q: %w", name, err)
	}
	defer rows.Close()

	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("read flag %q: %w", name, err)
	}
	return found, nil
}

func (r *flagRepo) Set(ctx context.Context, name string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(flagsTable).
		Columns("name", "set_at").
		Values(name, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.DoNothing(),
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("set flag %q: %w", name, err)
	}
	return nil
}

func (r *flagRepo) Clear(ctx context.Context, name string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(flagsTable).
		Where(entsql.EQ("name", name)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("clear flag %q: %w", name, err)
	}
	return nil
}

func (r *flagRepo) ClearAll(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(flagsTable).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("clear flags: %w", err)
	}
	return nil
}
