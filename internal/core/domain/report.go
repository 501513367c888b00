package domain

// MotorcycleSaleRecord pairs a sale with the motorcycle it references, for
// dashboards that need cost fields next to the sale price.
type MotorcycleSaleRecord struct {
	Sale       *MotorcycleSale `json:"sale"`
	Motorcycle *Motorcycle     `json:"motorcycle"`
}

// BranchSummary aggregates sales figures for one filial.
type BranchSummary struct {
	Branch               string  `json:"branch"`
	CartSalesCount       int     `json:"cart_sales_count"`
	CartSalesTotal       float64 `json:"cart_sales_total"`
	MotorcycleSalesCount int     `json:"motorcycle_sales_count"`
	MotorcycleSalesTotal float64 `json:"motorcycle_sales_total"`
	NetTotal             float64 `json:"net_total"`
}
