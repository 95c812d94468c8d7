package domain

import "github.com/samber/lo"

// CustomServiceName услуга с ценой по запросу: сумму вводит пользователь
const CustomServiceName = "Custom Project"

// Service услуга из каталога
// PricePence = 0 означает "quote required"
type Service struct {
	Name       string
	PricePence int64
}

// Catalogue фиксированный каталог услуг
var Catalogue = []Service{
	{Name: "Shop Front Signage", PricePence: 45000},
	{Name: "Vehicle Graphics", PricePence: 25000},
	{Name: "Banner & Display", PricePence: 15000},
	{Name: "Window Graphics", PricePence: 20000},
	{Name: CustomServiceName, PricePence: 0},
}

// FindService ищет услугу по названию
func FindService(name string) (Service, bool) {
	return lo.Find(Catalogue, func(s Service) bool {
		return s.Name == name
	})
}

// IsCustom returns true for the quote-required service where the total is entered by hand
func (s Service) IsCustom() bool {
	return s.Name == CustomServiceName
}

// RequiresQuote returns true if the service has no catalogue price
func (s Service) RequiresQuote() bool {
	return s.PricePence == 0
}
