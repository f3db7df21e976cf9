// Package validation содержит функции валидации входных данных.
package validation

import (
	"unicode"
	"unicode/utf8"

	"github.com/mmeshcher/mercado-system/internal/model"
)

// IsValidName проверяет, что имя непустое и начинается с заглавной буквы.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// IsValidGoodType проверяет принадлежность категории товара допустимому набору.
func IsValidGoodType(t model.GoodType) bool {
	switch t {
	case model.GoodTypeWeapon, model.GoodTypeArmor, model.GoodTypePotion,
		model.GoodTypeTool, model.GoodTypeOther:
		return true
	}
	return false
}

// IsValidClientType проверяет принадлежность типа клиента допустимому набору.
func IsValidClientType(t model.ClientType) bool {
	switch t {
	case model.ClientTypeHunter, model.ClientTypeWitcher, model.ClientTypeNoble,
		model.ClientTypeBandit, model.ClientTypeMercenary, model.ClientTypeVillager:
		return true
	}
	return false
}

// IsValidLocation проверяет принадлежность локации допустимому набору.
func IsValidLocation(l model.MerchantLocation) bool {
	switch l {
	case model.LocationNovigrado, model.LocationOxenfurt, model.LocationVelen,
		model.LocationSkellige, model.LocationToussaint:
		return true
	}
	return false
}

// IsValidSpecialty проверяет принадлежность специализации допустимому набору.
func IsValidSpecialty(s model.MerchantSpecialty) bool {
	switch s {
	case model.SpecialtyWeapons, model.SpecialtyArmor, model.SpecialtyPotions,
		model.SpecialtyIngredients, model.SpecialtyBooks, model.SpecialtyMisc:
		return true
	}
	return false
}

// IsValidReputation проверяет, что репутация лежит в диапазоне от 1 до 5.
func IsValidReputation(r int) bool {
	return r >= 1 && r <= 5
}
