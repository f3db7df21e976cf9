package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mmeshcher/mercado-system/internal/model"
)

// CreateGood сохраняет новый товар.
func (r *PostgresRepository) CreateGood(ctx context.Context, g model.Good) (*model.Good, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO bienes (id, nombre, descripcion, valor, tipo) VALUES ($1, $2, $3, $4, $5)`,
		g.ID, g.Nombre, g.Descripcion, g.Valor, string(g.Tipo),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, g.Nombre)
		}
		return nil, fmt.Errorf("insert bien: %w", err)
	}
	return &g, nil
}

// GetGoodByID возвращает товар по идентификатору.
func (r *PostgresRepository) GetGoodByID(ctx context.Context, id string) (*model.Good, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, nombre, descripcion, valor, tipo FROM bienes WHERE id = $1`,
		id,
	)
	return scanGood(row)
}

// GetGoodsByIDs возвращает товары по набору идентификаторов. Отсутствующие
// идентификаторы не считаются ошибкой: их просто нет в результате.
func (r *PostgresRepository) GetGoodsByIDs(ctx context.Context, ids []string) (map[string]model.Good, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nombre, descripcion, valor, tipo FROM bienes WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("select bienes: %w", err)
	}
	defer rows.Close()

	res := make(map[string]model.Good)
	for rows.Next() {
		var g model.Good
		var tipo string
		if err := rows.Scan(&g.ID, &g.Nombre, &g.Descripcion, &g.Valor, &tipo); err != nil {
			return nil, fmt.Errorf("scan bien: %w", err)
		}
		g.Tipo = model.GoodType(tipo)
		res[g.ID] = g
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// ListGoods возвращает товары по необязательным фильтрам имени и описания.
func (r *PostgresRepository) ListGoods(ctx context.Context, nombre, descripcion string) ([]model.Good, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nombre, descripcion, valor, tipo
		 FROM bienes
		 WHERE ($1 = '' OR nombre = $1) AND ($2 = '' OR descripcion = $2)
		 ORDER BY nombre`,
		nombre, descripcion,
	)
	if err != nil {
		return nil, fmt.Errorf("select bienes: %w", err)
	}
	defer rows.Close()

	var res []model.Good
	for rows.Next() {
		var g model.Good
		var tipo string
		if err := rows.Scan(&g.ID, &g.Nombre, &g.Descripcion, &g.Valor, &tipo); err != nil {
			return nil, fmt.Errorf("scan bien: %w", err)
		}
		g.Tipo = model.GoodType(tipo)
		res = append(res, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// UpdateGoodByID применяет частичное обновление товара по идентификатору.
func (r *PostgresRepository) UpdateGoodByID(ctx context.Context, id string, upd model.GoodUpdate) (*model.Good, error) {
	return r.updateGood(ctx, `SELECT id, nombre, descripcion, valor, tipo FROM bienes WHERE id = $1 FOR UPDATE`, id, upd)
}

// UpdateGoodByName применяет частичное обновление товара по имени.
func (r *PostgresRepository) UpdateGoodByName(ctx context.Context, nombre string, upd model.GoodUpdate) (*model.Good, error) {
	return r.updateGood(ctx, `SELECT id, nombre, descripcion, valor, tipo FROM bienes WHERE nombre = $1 FOR UPDATE`, nombre, upd)
}

func (r *PostgresRepository) updateGood(ctx context.Context, selectSQL, key string, upd model.GoodUpdate) (*model.Good, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	g, err := scanGood(tx.QueryRow(ctx, selectSQL, key))
	if err != nil {
		return nil, err
	}

	if upd.Nombre != nil {
		g.Nombre = *upd.Nombre
	}
	if upd.Descripcion != nil {
		g.Descripcion = *upd.Descripcion
	}
	if upd.Valor != nil {
		g.Valor = *upd.Valor
	}
	if upd.Tipo != nil {
		g.Tipo = *upd.Tipo
	}

	_, err = tx.Exec(ctx,
		`UPDATE bienes SET nombre = $2, descripcion = $3, valor = $4, tipo = $5 WHERE id = $1`,
		g.ID, g.Nombre, g.Descripcion, g.Valor, string(g.Tipo),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, g.Nombre)
		}
		return nil, fmt.Errorf("update bien: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return g, nil
}

// DeleteGoodByID удаляет товар по идентификатору и возвращает удалённый документ.
func (r *PostgresRepository) DeleteGoodByID(ctx context.Context, id string) (*model.Good, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM bienes WHERE id = $1 RETURNING id, nombre, descripcion, valor, tipo`,
		id,
	)
	return scanGood(row)
}

// DeleteGoodByName удаляет товар по имени и возвращает удалённый документ.
func (r *PostgresRepository) DeleteGoodByName(ctx context.Context, nombre string) (*model.Good, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM bienes WHERE nombre = $1 RETURNING id, nombre, descripcion, valor, tipo`,
		nombre,
	)
	return scanGood(row)
}

func scanGood(row pgx.Row) (*model.Good, error) {
	var g model.Good
	var tipo string
	err := row.Scan(&g.ID, &g.Nombre, &g.Descripcion, &g.Valor, &tipo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan bien: %w", err)
	}
	g.Tipo = model.GoodType(tipo)
	return &g, nil
}
