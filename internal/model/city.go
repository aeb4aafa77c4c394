package model

// City represents a gazetteer city row
type City struct {
	ID          int     `db:"id"`
	Name        string  `db:"name"`
	ASCIIName   string  `db:"ascii_name"`
	CountryCode string  `db:"country_code"`
	Admin1Code  string  `db:"admin1_code"`
	Population  int     `db:"population"`
	Lat         float64 `db:"lat"`
	Lon         float64 `db:"lon"`
	Timezone    *string `db:"timezone"`
}

// Country represents a gazetteer country row
type Country struct {
	Code string `db:"code"`
	Name string `db:"name"`
}

// Region is a first-level administrative division (state, province).
// Code has the GeoNames form "<country>.<admin1>", e.g. "IN.35".
type Region struct {
	Code        string `db:"code"`
	CountryCode string `db:"country_code"`
	Name        string `db:"name"`
}
