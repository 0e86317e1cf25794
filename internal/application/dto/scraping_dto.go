package dto

// Team equipo de un partido.
type Team struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// Odds cuotas del partido.
type Odds struct {
	Home string `json:"home"`
	Draw string `json:"draw"`
	Away string `json:"away"`
}

// Match partido dentro de una liga.
type Match struct {
	HomeTeam Team   `json:"homeTeam"`
	AwayTeam Team   `json:"awayTeam"`
	Time     string `json:"time"`
	Date     string `json:"date"`
	Odds     Odds   `json:"odds"`
}

// League liga con sus partidos.
type League struct {
	Name    string  `json:"name"`
	Logo    string  `json:"logo"`
	Matches []Match `json:"matches"`
}

// ScrapingResponse respuesta de /scraping/run. Data es el JSON del script tal cual
// o {leagues: [...]} si la salida era texto plano.
type ScrapingResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Output  string `json:"output,omitempty"`
}
