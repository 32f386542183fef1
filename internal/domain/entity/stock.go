package entity

// StockBalance totales acumulados de un material sobre todo su historial.
type StockBalance struct {
	Material       Material
	TotalProduced  int64
	TotalSold      int64
	TotalWithdrawn int64
}

// PeriodTotals producción y venta de un material dentro de un rango de fechas.
type PeriodTotals struct {
	Material      Material
	TotalProduced int64
	TotalSold     int64
}
