package model

import "time"

// GoodUpdate описывает разрешённые для изменения поля товара.
// Поля-указатели: nil означает «не менять». Идентификатор намеренно
// не представим в структуре.
type GoodUpdate struct {
	Nombre      *string   `json:"nombre,omitempty"`
	Descripcion *string   `json:"descripcion,omitempty"`
	Valor       *float64  `json:"valor,omitempty"`
	Tipo        *GoodType `json:"tipo,omitempty"`
}

// IsEmpty сообщает, что в обновлении нет ни одного поля.
func (u GoodUpdate) IsEmpty() bool {
	return u.Nombre == nil && u.Descripcion == nil && u.Valor == nil && u.Tipo == nil
}

// ClientUpdate описывает разрешённые для изменения поля клиента.
type ClientUpdate struct {
	Nombre   *string     `json:"nombre,omitempty"`
	Tipo     *ClientType `json:"tipo,omitempty"`
	Dinero   *float64    `json:"dinero,omitempty"`
	Bienes   []Holding   `json:"bienes,omitempty"`
	Historia *string     `json:"historia,omitempty"`
}

// IsEmpty сообщает, что в обновлении нет ни одного поля.
func (u ClientUpdate) IsEmpty() bool {
	return u.Nombre == nil && u.Tipo == nil && u.Dinero == nil && u.Bienes == nil && u.Historia == nil
}

// MerchantUpdate описывает разрешённые для изменения поля мерчанта.
type MerchantUpdate struct {
	Nombre       *string            `json:"nombre,omitempty"`
	Tienda       *string            `json:"tienda,omitempty"`
	Ubicacion    *MerchantLocation  `json:"ubicacion,omitempty"`
	Especialidad *MerchantSpecialty `json:"especialidad,omitempty"`
	Reputacion   *int               `json:"reputacion,omitempty"`
	Dinero       *float64           `json:"dinero,omitempty"`
	Inventario   []Holding          `json:"inventario,omitempty"`
}

// IsEmpty сообщает, что в обновлении нет ни одного поля.
func (u MerchantUpdate) IsEmpty() bool {
	return u.Nombre == nil && u.Tienda == nil && u.Ubicacion == nil &&
		u.Especialidad == nil && u.Reputacion == nil && u.Dinero == nil && u.Inventario == nil
}

// TransactionUpdate описывает поля записи о сделке, доступные для
// административной правки. Итоговая сумма и идентификатор защищены:
// они не представимы в структуре и не пересчитываются.
type TransactionUpdate struct {
	Fecha  *time.Time `json:"fecha,omitempty"`
	Bienes []Holding  `json:"bienes,omitempty"`
}

// IsEmpty сообщает, что в обновлении нет ни одного поля.
func (u TransactionUpdate) IsEmpty() bool {
	return u.Fecha == nil && u.Bienes == nil
}
