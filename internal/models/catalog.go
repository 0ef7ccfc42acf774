package models

// CatalogSummary describes a registered module catalog
type CatalogSummary struct {
	Name     string   `json:"name"`
	Terminal int      `json:"terminal"`
	Normal   int      `json:"normal"`
	Modules  []string `json:"modules"`
}

// CatalogList wraps the array of catalogs
type CatalogList struct {
	Catalogs []CatalogSummary `json:"catalogs"`
}
