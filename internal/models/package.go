package models

// PackageFullCourse — идентификатор пакета полного курса. Успешная
// оплата этого пакета включает пользователю премиум-доступ.
const PackageFullCourse = "corso_completo"

// Package представляет продаваемый пакет из фиксированного прайс-листа.
type Package struct {
	ID          string  `json:"id"`          // Идентификатор пакета
	Name        string  `json:"name"`        // Название
	Price       float64 `json:"price"`       // Цена
	Currency    string  `json:"currency"`    // Валюта
	Description string  `json:"description"` // Описание
}

// Packages возвращает фиксированный прайс-лист пакетов курса.
func Packages() []Package {
	return []Package{
		{
			ID:          PackageFullCourse,
			Name:        "Corso Completo",
			Price:       79.99,
			Currency:    "EUR",
			Description: "Accesso completo a tutti i contenuti del corso",
		},
		{
			ID:          "powerpoint_strategie",
			Name:        "PowerPoint Strategie",
			Price:       10.99,
			Currency:    "EUR",
			Description: "PowerPoint delle strategie di lettura del grafico",
		},
		{
			ID:          "video_strategia",
			Name:        "Video Strategia",
			Price:       14.99,
			Currency:    "EUR",
			Description: "Videolezione sulla strategia e sulla sua configurazione",
		},
		{
			ID:          "powerpoint_nicchia",
			Name:        "PowerPoint Nicchia",
			Price:       17.99,
			Currency:    "EUR",
			Description: "PowerPoint su argomenti di nicchia inerenti al macro argomento",
		},
	}
}

// FindPackage ищет пакет в прайс-листе по идентификатору.
func FindPackage(id string) (Package, bool) {
	for _, p := range Packages() {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}
