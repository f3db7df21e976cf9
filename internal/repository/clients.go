package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mmeshcher/mercado-system/internal/model"
)

const clientColumns = `id, nombre, tipo, dinero, bienes, historia`

// CreateClient сохраняет нового клиента.
func (r *PostgresRepository) CreateClient(ctx context.Context, c model.Client) (*model.Client, error) {
	if c.Bienes == nil {
		c.Bienes = []model.Holding{}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO clientes (id, nombre, tipo, dinero, bienes, historia) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Nombre, string(c.Tipo), c.Dinero, c.Bienes, c.Historia,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, c.Nombre)
		}
		return nil, fmt.Errorf("insert cliente: %w", err)
	}
	return &c, nil
}

// GetClientByID возвращает клиента по идентификатору.
func (r *PostgresRepository) GetClientByID(ctx context.Context, id string) (*model.Client, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clientes WHERE id = $1`,
		id,
	)
	return scanClient(row)
}

// ListClients возвращает клиентов по необязательному фильтру имени.
func (r *PostgresRepository) ListClients(ctx context.Context, nombre string) ([]model.Client, error) {
	return r.listClients(ctx,
		`SELECT `+clientColumns+` FROM clientes WHERE ($1 = '' OR nombre = $1) ORDER BY nombre`,
		nombre,
	)
}

// ListClientsByType возвращает клиентов указанного типа.
func (r *PostgresRepository) ListClientsByType(ctx context.Context, tipo string) ([]model.Client, error) {
	return r.listClients(ctx,
		`SELECT `+clientColumns+` FROM clientes WHERE tipo = $1 ORDER BY nombre`,
		tipo,
	)
}

// ListClientsByMoney возвращает клиентов с точным значением баланса.
func (r *PostgresRepository) ListClientsByMoney(ctx context.Context, dinero float64) ([]model.Client, error) {
	return r.listClients(ctx,
		`SELECT `+clientColumns+` FROM clientes WHERE dinero = $1 ORDER BY nombre`,
		dinero,
	)
}

func (r *PostgresRepository) listClients(ctx context.Context, sql string, arg any) ([]model.Client, error) {
	rows, err := r.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("select clientes: %w", err)
	}
	defer rows.Close()

	var res []model.Client
	for rows.Next() {
		var c model.Client
		var tipo string
		if err := rows.Scan(&c.ID, &c.Nombre, &tipo, &c.Dinero, &c.Bienes, &c.Historia); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		c.Tipo = model.ClientType(tipo)
		res = append(res, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// UpdateClient применяет частичное обновление клиента по идентификатору.
func (r *PostgresRepository) UpdateClient(ctx context.Context, id string, upd model.ClientUpdate) (*model.Client, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	c, err := scanClient(tx.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clientes WHERE id = $1 FOR UPDATE`,
		id,
	))
	if err != nil {
		return nil, err
	}

	if upd.Nombre != nil {
		c.Nombre = *upd.Nombre
	}
	if upd.Tipo != nil {
		c.Tipo = *upd.Tipo
	}
	if upd.Dinero != nil {
		c.Dinero = *upd.Dinero
	}
	if upd.Bienes != nil {
		c.Bienes = upd.Bienes
	}
	if upd.Historia != nil {
		c.Historia = *upd.Historia
	}

	_, err = tx.Exec(ctx,
		`UPDATE clientes SET nombre = $2, tipo = $3, dinero = $4, bienes = $5, historia = $6 WHERE id = $1`,
		c.ID, c.Nombre, string(c.Tipo), c.Dinero, c.Bienes, c.Historia,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, c.Nombre)
		}
		return nil, fmt.Errorf("update cliente: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return c, nil
}

// DeleteClient удаляет клиента по идентификатору и возвращает удалённый документ.
func (r *PostgresRepository) DeleteClient(ctx context.Context, id string) (*model.Client, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM clientes WHERE id = $1 RETURNING `+clientColumns,
		id,
	)
	return scanClient(row)
}

func scanClient(row pgx.Row) (*model.Client, error) {
	var c model.Client
	var tipo string
	err := row.Scan(&c.ID, &c.Nombre, &tipo, &c.Dinero, &c.Bienes, &c.Historia)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan cliente: %w", err)
	}
	c.Tipo = model.ClientType(tipo)
	return &c, nil
}
