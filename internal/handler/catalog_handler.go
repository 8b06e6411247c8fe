package handler

import "net/http"

// serviceEntry は提供サービスカタログの1件。
type serviceEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// partnerEntry はパートナーカタログの1件。
type partnerEntry struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Industry         string `json:"industry"`
	PartnershipSince string `json:"partnership_since"`
}

// servicesCatalog は提供サービスの固定カタログ。起動後に変更しない。
var servicesCatalog = []serviceEntry{
	{
		ID:          "telecom",
		Name:        "Telecom Provider",
		Description: "Advanced telecommunications infrastructure and connectivity solutions",
		Features:    []string{"Network Infrastructure", "VoIP Solutions", "Enterprise Communications", "5G Implementation"},
	},
	{
		ID:          "cloud",
		Name:        "Cloud Services",
		Description: "Scalable cloud infrastructure and migration services",
		Features:    []string{"Cloud Migration", "Infrastructure as a Service", "Platform as a Service", "Cloud Security"},
	},
	{
		ID:          "marketing",
		Name:        "Digital Marketing",
		Description: "Data-driven digital marketing strategies and brand building",
		Features:    []string{"SEO Optimization", "Social Media Marketing", "Content Strategy", "Analytics & Reporting"},
	},
}

// partnersCatalog はパートナーの固定カタログ。起動後に変更しない。
var partnersCatalog = []partnerEntry{
	{
		ID:               "tata-tele",
		Name:             "Tata Tele",
		Description:      "Leading telecommunications provider in India",
		Industry:         "Telecommunications",
		PartnershipSince: "2020",
	},
	{
		ID:               "jio",
		Name:             "Jio",
		Description:      "Digital services and connectivity leader",
		Industry:         "Digital Services",
		PartnershipSince: "2021",
	},
	{
		ID:               "vi",
		Name:             "VI (Vodafone Idea)",
		Description:      "Major telecommunications operator",
		Industry:         "Telecommunications",
		PartnershipSince: "2019",
	},
	{
		ID:               "microsoft",
		Name:             "Microsoft",
		Description:      "Global leader in cloud and technology solutions",
		Industry:         "Technology",
		PartnershipSince: "2018",
	},
}

// CatalogHandler は提供サービスとパートナーの固定カタログを返すHTTPハンドラー。
type CatalogHandler struct{}

// NewCatalogHandler はCatalogHandlerを生成する。
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListServices は提供サービス一覧を返す。
// GET /api/services
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]serviceEntry{"services": servicesCatalog})
}

// ListPartners はパートナー一覧を返す。
// GET /api/partners
func (h *CatalogHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]partnerEntry{"partners": partnersCatalog})
}
