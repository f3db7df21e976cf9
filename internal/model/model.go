// Package model содержит доменные сущности торгового сервиса.
package model

import "time"

// GoodType описывает категорию товара.
type GoodType string

const (
	GoodTypeWeapon GoodType = "arma"
	GoodTypeArmor  GoodType = "armadura"
	GoodTypePotion GoodType = "pocion"
	GoodTypeTool   GoodType = "herramienta"
	GoodTypeOther  GoodType = "otro"
)

// Good представляет товар, доступный для торговли.
type Good struct {
	ID          string   `json:"_id"`
	Nombre      string   `json:"nombre"`
	Descripcion string   `json:"descripcion"`
	Valor       float64  `json:"valor"`
	Tipo        GoodType `json:"tipo"`
}

// Holding описывает позицию списка владения: товар и его количество.
// Количество всегда положительно, нулевые позиции не хранятся.
type Holding struct {
	BienID   string `json:"bienId"`
	Cantidad int    `json:"cantidad"`
}

// ClientType описывает тип клиента.
type ClientType string

const (
	ClientTypeHunter    ClientType = "Cazador"
	ClientTypeWitcher   ClientType = "Brujo"
	ClientTypeNoble     ClientType = "Noble"
	ClientTypeBandit    ClientType = "Bandido"
	ClientTypeMercenary ClientType = "Mercenario"
	ClientTypeVillager  ClientType = "Aldeano"
)

// Client представляет покупателя с денежным балансом и списком товаров.
type Client struct {
	ID       string     `json:"_id"`
	Nombre   string     `json:"nombre"`
	Tipo     ClientType `json:"tipo"`
	Dinero   float64    `json:"dinero"`
	Bienes   []Holding  `json:"bienes"`
	Historia string     `json:"historia,omitempty"`
}

// MerchantLocation описывает место, где торгует мерчант.
type MerchantLocation string

const (
	LocationNovigrado MerchantLocation = "Novigrado"
	LocationOxenfurt  MerchantLocation = "Oxenfurt"
	LocationVelen     MerchantLocation = "Velen"
	LocationSkellige  MerchantLocation = "Skellige"
	LocationToussaint MerchantLocation = "Toussaint"
)

// MerchantSpecialty описывает специализацию лавки мерчанта.
type MerchantSpecialty string

const (
	SpecialtyWeapons     MerchantSpecialty = "Armas"
	SpecialtyArmor       MerchantSpecialty = "Armaduras"
	SpecialtyPotions     MerchantSpecialty = "Pociones"
	SpecialtyIngredients MerchantSpecialty = "Ingredientes"
	SpecialtyBooks       MerchantSpecialty = "Libros"
	SpecialtyMisc        MerchantSpecialty = "Miscelánea"
)

// Merchant представляет продавца с лавкой, репутацией и складом товаров.
type Merchant struct {
	ID           string            `json:"_id"`
	Nombre       string            `json:"nombre"`
	Tienda       string            `json:"tienda"`
	Ubicacion    MerchantLocation  `json:"ubicacion"`
	Especialidad MerchantSpecialty `json:"especialidad"`
	Reputacion   int               `json:"reputacion"`
	Dinero       float64           `json:"dinero"`
	Inventario   []Holding         `json:"inventario"`
}

// Transaction представляет неизменяемую запись о совершённой сделке.
// Total фиксируется по ценам на момент совершения и далее не пересчитывается.
type Transaction struct {
	ID         string    `json:"_id"`
	Fecha      time.Time `json:"fecha"`
	ClienteID  string    `json:"clienteId"`
	MercaderID string    `json:"mercaderId"`
	Bienes     []Holding `json:"bienes"`
	Total      float64   `json:"total"`
}

// TradeRequest описывает входящий запрос на совершение сделки.
type TradeRequest struct {
	ClienteID  string    `json:"clienteId"`
	MercaderID string    `json:"mercaderId"`
	Bienes     []Holding `json:"bienes"`
}
