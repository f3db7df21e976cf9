// Package inventory реализует операции над списком владения товарами.
// Список общий для клиента (bienes) и мерчанта (inventario): позиции с
// одинаковым товаром сливаются, нулевые и отрицательные количества в
// списке не хранятся, относительный порядок позиций сохраняется.
package inventory

import (
	"errors"

	"github.com/mmeshcher/mercado-system/internal/model"
)

// ErrInvalidQuantity возвращается при попытке операции с неположительным количеством.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// Find возвращает индекс позиции с указанным товаром или -1, если её нет.
func Find(list []model.Holding, bienID string) int {
	for i, h := range list {
		if h.BienID == bienID {
			return i
		}
	}
	return -1
}

// Add добавляет количество товара в список. Если позиция с таким товаром
// уже есть, количества суммируются, иначе позиция добавляется в конец.
// Возвращает обновлённый список.
func Add(list []model.Holding, bienID string, cantidad int) ([]model.Holding, error) {
	if cantidad <= 0 {
		return list, ErrInvalidQuantity
	}

	if i := Find(list, bienID); i != -1 {
		list[i].Cantidad += cantidad
		return list, nil
	}

	return append(list, model.Holding{BienID: bienID, Cantidad: cantidad}), nil
}

// Remove убирает количество товара из списка. Отсутствующий товар не
// считается ошибкой: список возвращается без изменений. Если cantidad
// равно nil, позиция удаляется целиком. Если остаток позиции не превышает
// cantidad, позиция также удаляется целиком: нулевые количества в списке
// не остаются.
func Remove(list []model.Holding, bienID string, cantidad *int) ([]model.Holding, error) {
	i := Find(list, bienID)
	if i == -1 {
		return list, nil
	}

	if cantidad == nil {
		return append(list[:i], list[i+1:]...), nil
	}

	if *cantidad <= 0 {
		return list, ErrInvalidQuantity
	}

	if list[i].Cantidad <= *cantidad {
		return append(list[:i], list[i+1:]...), nil
	}

	list[i].Cantidad -= *cantidad
	return list, nil
}

// Has сообщает, содержит ли список каждый из запрошенных товаров в
// количестве не меньше требуемого.
func Has(list []model.Holding, required []model.Holding) bool {
	for _, req := range required {
		i := Find(list, req.BienID)
		if i == -1 || list[i].Cantidad < req.Cantidad {
			return false
		}
	}
	return true
}

// Clone возвращает независимую копию списка владения.
func Clone(list []model.Holding) []model.Holding {
	if list == nil {
		return nil
	}
	out := make([]model.Holding, len(list))
	copy(out, list)
	return out
}
