package scraping

import (
	"strings"
	"time"

	"github.com/jhoicas/scoreking-api/internal/application/dto"
)

// Cuotas fijas mientras el script no las proporcione.
var defaultOdds = dto.Odds{Home: "2.00", Draw: "3.00", Away: "3.50"}

// ConvertRawOutput interpreta la salida de texto del script:
//
//	Liga: Premier League
//	Logo: https://.../pl.png
//	nombre: Arsenal|https://.../ars.png vs Chelsea|https://.../che.png - 15:00
//
// Las ligas sin partidos se descartan. date es la fecha de now (YYYY-MM-DD).
func ConvertRawOutput(raw string, now time.Time) []dto.League {
	leagues := []dto.League{}
	var current *dto.League
	date := now.Format("2006-01-02")

	flush := func() {
		if current != nil && len(current.Matches) > 0 {
			leagues = append(leagues, *current)
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "Liga:"):
			flush()
			current = &dto.League{Name: strings.TrimSpace(strings.TrimPrefix(line, "Liga:")), Matches: []dto.Match{}}
		case strings.HasPrefix(line, "Logo:") && current != nil:
			current.Logo = strings.TrimSpace(strings.TrimPrefix(line, "Logo:"))
		case strings.HasPrefix(line, "nombre:") && current != nil:
			if m, ok := parseMatch(strings.TrimPrefix(line, "nombre:"), date); ok {
				current.Matches = append(current.Matches, m)
			}
		}
	}
	flush()
	return leagues
}

func parseMatch(s, date string) (dto.Match, bool) {
	sides := strings.Split(s, " vs ")
	if len(sides) != 2 {
		return dto.Match{}, false
	}
	away, kickoff, _ := strings.Cut(sides[1], " - ")
	return dto.Match{
		HomeTeam: parseTeam(sides[0]),
		AwayTeam: parseTeam(away),
		Time:     strings.TrimSpace(kickoff),
		Date:     date,
		Odds:     defaultOdds,
	}, true
}

func parseTeam(s string) dto.Team {
	name, logo, _ := strings.Cut(s, "|")
	return dto.Team{Name: strings.TrimSpace(name), Logo: strings.TrimSpace(logo)}
}
