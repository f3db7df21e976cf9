package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mmeshcher/mercado-system/internal/model"
	"github.com/mmeshcher/mercado-system/internal/trade"
)

const transactionColumns = `id, fecha, cliente_id, mercader_id, bienes, total`

// SettleTransaction проверяет и исполняет сделку в одной транзакции БД.
// Строки мерчанта и клиента блокируются на время проверки и мутации,
// поэтому параллельные сделки над одними участниками сериализуются и
// повторная продажа одного запаса невозможна. Либо фиксируются все
// изменения (деньги, списки владения, запись о сделке), либо ни одно.
func (r *PostgresRepository) SettleTransaction(ctx context.Context, t model.Transaction) (*model.Transaction, error) {
	var res *model.Transaction

	err := r.withRetry(ctx, func() error {
		var err error
		res, err = r.settle(ctx, t)
		return err
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (r *PostgresRepository) settle(ctx context.Context, t model.Transaction) (*model.Transaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	// Блокируем строки участников в фиксированном порядке: сначала мерчант,
	// затем клиент. Единый порядок исключает взаимную блокировку параллельных сделок.
	merchant, err := scanMerchant(tx.QueryRow(ctx,
		`SELECT `+merchantColumns+` FROM mercaderes WHERE id = $1 FOR UPDATE`,
		t.MercaderID,
	))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", trade.ErrMerchantNotFound, t.MercaderID)
		}
		return nil, err
	}

	client, err := scanClient(tx.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clientes WHERE id = $1 FOR UPDATE`,
		t.ClienteID,
	))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", trade.ErrClientNotFound, t.ClienteID)
		}
		return nil, err
	}

	goods, err := r.goodsForItems(ctx, tx, t.Bienes)
	if err != nil {
		return nil, err
	}

	total, err := trade.Validate(merchant, client, goods, t.Bienes)
	if err != nil {
		return nil, err
	}

	if err := trade.Apply(merchant, client, t.Bienes, total); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE mercaderes SET dinero = $2, inventario = $3 WHERE id = $1`,
		merchant.ID, merchant.Dinero, merchant.Inventario,
	)
	if err != nil {
		return nil, fmt.Errorf("update mercader: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE clientes SET dinero = $2, bienes = $3 WHERE id = $1`,
		client.ID, client.Dinero, client.Bienes,
	)
	if err != nil {
		return nil, fmt.Errorf("update cliente: %w", err)
	}

	t.Total = total

	_, err = tx.Exec(ctx,
		`INSERT INTO transacciones (id, fecha, cliente_id, mercader_id, bienes, total)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Fecha, t.ClienteID, t.MercaderID, t.Bienes, t.Total,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaccion: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return &t, nil
}

func (r *PostgresRepository) goodsForItems(ctx context.Context, tx pgx.Tx, items []model.Holding) (map[string]model.Good, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.BienID)
	}

	rows, err := tx.Query(ctx,
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

// TransactionFilter описывает необязательные фильтры списка сделок.
type TransactionFilter struct {
	ClienteID   string
	MercaderID  string
	FechaInicio *time.Time
	FechaFin    *time.Time
}

// ListTransactions возвращает сделки, удовлетворяющие фильтрам, от новых к старым.
func (r *PostgresRepository) ListTransactions(ctx context.Context, f TransactionFilter) ([]model.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+transactionColumns+`
		 FROM transacciones
		 WHERE ($1 = '' OR cliente_id = $1)
		   AND ($2 = '' OR mercader_id = $2)
		   AND ($3::timestamptz IS NULL OR fecha >= $3)
		   AND ($4::timestamptz IS NULL OR fecha <= $4)
		 ORDER BY fecha DESC`,
		f.ClienteID, f.MercaderID, f.FechaInicio, f.FechaFin,
	)
	if err != nil {
		return nil, fmt.Errorf("select transacciones: %w", err)
	}
	defer rows.Close()

	var res []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.Fecha, &t.ClienteID, &t.MercaderID, &t.Bienes, &t.Total); err != nil {
			return nil, fmt.Errorf("scan transaccion: %w", err)
		}
		res = append(res, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// GetTransactionByID возвращает запись о сделке по идентификатору.
func (r *PostgresRepository) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transacciones WHERE id = $1`,
		id,
	)
	return scanTransaction(row)
}

// UpdateTransaction применяет административную правку записи о сделке.
// Проверки условий сделки не выполняются, зафиксированная сумма не меняется.
func (r *PostgresRepository) UpdateTransaction(ctx context.Context, id string, upd model.TransactionUpdate) (*model.Transaction, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	t, err := scanTransaction(tx.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transacciones WHERE id = $1 FOR UPDATE`,
		id,
	))
	if err != nil {
		return nil, err
	}

	if upd.Fecha != nil {
		t.Fecha = *upd.Fecha
	}
	if upd.Bienes != nil {
		t.Bienes = upd.Bienes
	}

	_, err = tx.Exec(ctx,
		`UPDATE transacciones SET fecha = $2, bienes = $3 WHERE id = $1`,
		t.ID, t.Fecha, t.Bienes,
	)
	if err != nil {
		return nil, fmt.Errorf("update transaccion: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return t, nil
}

// DeleteTransaction удаляет запись о сделке по идентификатору.
func (r *PostgresRepository) DeleteTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`DELETE FROM transacciones WHERE id = $1 RETURNING `+transactionColumns,
		id,
	)
	return scanTransaction(row)
}

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	var t model.Transaction
	err := row.Scan(&t.ID, &t.Fecha, &t.ClienteID, &t.MercaderID, &t.Bienes, &t.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan transaccion: %w", err)
	}
	return &t, nil
}
