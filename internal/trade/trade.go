// Package trade реализует проверку и исполнение сделки между клиентом
// и мерчантом. Функции пакета чистые: они работают над уже загруженными
// сущностями, всю проверку выполняют до первой мутации и не обращаются
// к хранилищу.
package trade

import (
	"errors"
	"fmt"

	"github.com/mmeshcher/mercado-system/internal/inventory"
	"github.com/mmeshcher/mercado-system/internal/model"
)

// ErrMerchantNotFound возвращается, если мерчант сделки не найден.
var (
	ErrMerchantNotFound = errors.New("mercader no encontrado")
	// ErrClientNotFound возвращается, если клиент сделки не найден.
	ErrClientNotFound = errors.New("cliente no encontrado")
	// ErrGoodNotFound возвращается, если один из товаров сделки не найден.
	ErrGoodNotFound = errors.New("bien no encontrado")
	// ErrEmptyTrade возвращается для сделки без единой позиции.
	ErrEmptyTrade = errors.New("la transacción no contiene bienes")
	// ErrInsufficientFunds возвращается, если у клиента не хватает денег на сделку.
	ErrInsufficientFunds = errors.New("el cliente no tiene suficiente dinero para realizar la transacción")
	// ErrGoodNotInInventory возвращается, если товара нет в инвентаре мерчанта.
	ErrGoodNotInInventory = errors.New("el mercader no tiene el bien en su inventario")
	// ErrInsufficientStock возвращается, если у мерчанта не хватает товара.
	ErrInsufficientStock = errors.New("el mercader no tiene suficiente cantidad del bien")
)

// Validate проверяет допустимость сделки и вычисляет её стоимость.
// Проверки выполняются последовательно и прерываются на первой ошибке:
// существование мерчанта, клиента и каждого товара, платёжеспособность
// клиента, достаточность запасов мерчанта. Ни одна сущность при этом
// не изменяется.
func Validate(merchant *model.Merchant, client *model.Client, goods map[string]model.Good, items []model.Holding) (float64, error) {
	if merchant == nil {
		return 0, ErrMerchantNotFound
	}
	if client == nil {
		return 0, ErrClientNotFound
	}
	if len(items) == 0 {
		return 0, ErrEmptyTrade
	}

	var total float64
	for _, item := range items {
		if item.Cantidad <= 0 {
			return 0, fmt.Errorf("%w: bien %s", inventory.ErrInvalidQuantity, item.BienID)
		}
		good, ok := goods[item.BienID]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrGoodNotFound, item.BienID)
		}
		total += good.Valor * float64(item.Cantidad)
	}

	if client.Dinero < total {
		return 0, ErrInsufficientFunds
	}

	for _, item := range items {
		i := inventory.Find(merchant.Inventario, item.BienID)
		if i == -1 {
			return 0, fmt.Errorf("%w: %s", ErrGoodNotInInventory, item.BienID)
		}
		if have := merchant.Inventario[i].Cantidad; have < item.Cantidad {
			return 0, fmt.Errorf("%w: %s: disponible %d, solicitado %d",
				ErrInsufficientStock, item.BienID, have, item.Cantidad)
		}
	}

	return total, nil
}

// Apply исполняет уже проверенную сделку: переводит деньги от клиента
// мерчанту и перемещает каждую позицию из инвентаря мерчанта в список
// товаров клиента. Вызывается только после успешного Validate над теми
// же сущностями.
func Apply(merchant *model.Merchant, client *model.Client, items []model.Holding, total float64) error {
	merchant.Dinero += total
	client.Dinero -= total

	for _, item := range items {
		cantidad := item.Cantidad

		updated, err := inventory.Remove(merchant.Inventario, item.BienID, &cantidad)
		if err != nil {
			return fmt.Errorf("remove from inventario: %w", err)
		}
		merchant.Inventario = updated

		updated, err = inventory.Add(client.Bienes, item.BienID, cantidad)
		if err != nil {
			return fmt.Errorf("add to bienes: %w", err)
		}
		client.Bienes = updated
	}

	return nil
}

// Reprice вычисляет стоимость позиций сделки по текущим ценам товаров.
// Используется отдельно от зафиксированной при совершении суммы.
func Reprice(goods map[string]model.Good, items []model.Holding) (float64, error) {
	var total float64
	for _, item := range items {
		good, ok := goods[item.BienID]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrGoodNotFound, item.BienID)
		}
		total += good.Valor * float64(item.Cantidad)
	}
	return total, nil
}

// IsNotFound сообщает, относится ли ошибка к отсутствию участника или товара сделки.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrMerchantNotFound) ||
		errors.Is(err, ErrClientNotFound) ||
		errors.Is(err, ErrGoodNotFound)
}

// IsValidation сообщает, относится ли ошибка к нарушению условий сделки.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrGoodNotInInventory) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrEmptyTrade) ||
		errors.Is(err, inventory.ErrInvalidQuantity)
}
