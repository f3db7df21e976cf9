package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mmeshcher/mercado-system/internal/model"
)

const merchantColumns = `id, nombre, tienda, ubicacion, especialidad, reputacion, dinero, inventario`

// CreateMerchant сохраняет нового мерчанта.
func (r *PostgresRepository) CreateMerchant(ctx context.Context, m model.Merchant) (*model.Merchant, error) {
	if m.Inventario == nil {
		m.Inventario = []model.Holding{}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO mercaderes (id, nombre, tienda, ubicacion, especialidad, reputacion, dinero, inventario)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.Nombre, m.Tienda, string(m.Ubicacion), string(m.Especialidad), m.Reputacion, m.Dinero, m.Inventario,
	)
	if err != nil {
		return nil, fmt.Errorf("insert mercader: %w", err)
	}
	return &m, nil
}

// GetMerchantByID возвращает мерчанта по идентификатору.
func (r *PostgresRepository) GetMerchantByID(ctx context.Context, id string) (*model.Merchant, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+merchantColumns+` FROM mercaderes WHERE id = $1`,
		id,
	)
	return scanMerchant(row)
}

// ListMerchants возвращает мерчантов по необязательному фильтру имени.
func (r *PostgresRepository) ListMerchants(ctx context.Context, nombre string) ([]model.Merchant, error) {
	return r.listMerchants(ctx,
		`SELECT `+merchantColumns+` FROM mercaderes WHERE ($1 = '' OR nombre = $1) ORDER BY nombre`,
		nombre,
	)
}

// ListMerchantsByLocation возвращает мерчантов в указанной локации.
func (r *PostgresRepository) ListMerchantsByLocation(ctx context.Context, ubicacion string) ([]model.Merchant, error) {
	return r.listMerchants(ctx,
		`SELECT `+merchantColumns+` FROM mercaderes WHERE ubicacion = $1 ORDER BY nombre`,
		ubicacion,
	)
}

// ListMerchantsBySpecialty возвращает мерчантов с указанной специализацией.
func (r *PostgresRepository) ListMerchantsBySpecialty(ctx context.Context, especialidad string) ([]model.Merchant, error) {
	return r.listMerchants(ctx,
		`SELECT `+merchantColumns+` FROM mercaderes WHERE especialidad = $1 ORDER BY nombre`,
		especialidad,
	)
}

func (r *PostgresRepository) listMerchants(ctx context.Context, sql string, arg any) ([]model.Merchant, error) {
	rows, err := r.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("select mercaderes: %w", err)
	}
	defer rows.Close()

	var res []model.Merchant
	for rows.Next() {
		var m model.Merchant
		var ubicacion, especialidad string
		if err := rows.Scan(&m.ID, &m.Nombre, &m.Tienda, &ubicacion, &especialidad, &m.Reputacion, &m.Dinero, &m.Inventario); err != nil {
			return nil, fmt.Errorf("scan mercader: %w", err)
		}
		m.Ubicacion = model.MerchantLocation(ubicacion)
		m.Especialidad = model.MerchantSpecialty(especialidad)
		res = append(res, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// GetMerchantByName возвращает первого мерчанта с указанным именем.
func (r *PostgresRepository) GetMerchantByName(ctx context.Context, nombre string) (*model.Merchant, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+merchantColumns+` FROM mercaderes WHERE nombre = $1 ORDER BY id LIMIT 1`,
		nombre,
	)
	return scanMerchant(row)
}

// UpdateMerchant применяет частичное обновление мерчанта по идентификатору.
func (r *PostgresRepository) UpdateMerchant(ctx context.Context, id string, upd model.MerchantUpdate) (*model.Merchant, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	m, err := scanMerchant(tx.QueryRow(ctx,
		`SELECT `+merchantColumns+` FROM mercaderes WHERE id = $1 FOR UPDATE`,
		id,
	))
	if err != nil {
		return nil, err
	}

	if upd.Nombre != nil {
		m.Nombre = *upd.Nombre
	}
	if upd.Tienda != nil {
		m.Tienda = *upd.Tienda
	}
	if upd.Ubicacion != nil {
		m.Ubicacion = *upd.Ubicacion
	}
	if upd.Especialidad != nil {
		m.Especialidad = *upd.Especialidad
	}
	if upd.Reputacion != nil {
		m.Reputacion = *upd.Reputacion
	}
	if upd.Dinero != nil {
		m.Dinero = *upd.Dinero
	}
	if upd.Inventario != nil {
		m.Inventario = upd.Inventario
	}

	_, err = tx.Exec(ctx,
		`UPDATE mercaderes SET nombre = $2, tienda = $3, ubicacion = $4, especialidad = $5,
		        reputacion = $6, dinero = $7, inventario = $8
		 WHERE id = $1`,
		m.ID, m.Nombre, m.Tienda, string(m.Ubicacion), string(m.Especialidad), m.Reputacion, m.Dinero, m.Inventario,
	)
	if err != nil {
		return nil, fmt.Errorf("update mercader: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return m, nil
}

// DeleteMerchant удаляет мерчанта по идентификатору и возвращает удалённый документ.
func (r *PostgresRepository) DeleteMerchant(ctx context.Context, id string) (*model.Merchant, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM mercaderes WHERE id = $1 RETURNING `+merchantColumns,
		id,
	)
	return scanMerchant(row)
}

func scanMerchant(row pgx.Row) (*model.Merchant, error) {
	var m model.Merchant
	var ubicacion, especialidad string
	err := row.Scan(&m.ID, &m.Nombre, &m.Tienda, &ubicacion, &especialidad, &m.Reputacion, &m.Dinero, &m.Inventario)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan mercader: %w", err)
	}
	m.Ubicacion = model.MerchantLocation(ubicacion)
	m.Especialidad = model.MerchantSpecialty(especialidad)
	return &m, nil
}
