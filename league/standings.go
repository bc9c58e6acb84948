package league

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"placar-backend/models"
)

// RecomputeRecord derives a team's win/draw/loss and goal totals from the
// match log. The stored fields on the input are ignored; everything else
// (id, name, shield, roster) passes through unchanged. Matches that do not
// involve the team are skipped, so dangling references in the log are
// harmless.
func RecomputeRecord(team models.Team, matches []models.Match) models.Team {
	team.Wins = 0
	team.Draws = 0
	team.Losses = 0
	team.GoalsFor = 0
	team.GoalsAgainst = 0

	for _, m := range matches {
		var scored, conceded int
		switch team.ID {
		case m.HomeTeamID:
			scored, conceded = m.HomeScore, m.AwayScore
		case m.AwayTeamID:
			scored, conceded = m.AwayScore, m.HomeScore
		default:
			continue
		}

		team.GoalsFor += scored
		team.GoalsAgainst += conceded
		switch {
		case scored > conceded:
			team.Wins++
		case scored == conceded:
			team.Draws++
		default:
			team.Losses++
		}
	}

	return team
}

// Points is the competition points total: 3 per win, 1 per draw.
func Points(team models.Team) int {
	return team.Wins*3 + team.Draws
}

func GoalDifference(team models.Team) int {
	return team.GoalsFor - team.GoalsAgainst
}

// Rank recomputes every team's record from the match log and returns a new
// slice sorted by competition rules: points, then goal difference, then
// goals scored, then name. The name fallback makes the order total, so the
// result does not depend on input order. Inputs are not mutated.
func Rank(teams []models.Team, matches []models.Match) []models.Team {
	ranked := make([]models.Team, len(teams))
	for i, t := range teams {
		ranked[i] = RecomputeRecord(t, matches)
	}

	// Name ties fall back to locale-aware ordering; the league runs in
	// pt-BR. Collators are not safe for concurrent use, so each call
	// gets its own.
	nameCollator := collate.New(language.BrazilianPortuguese)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if Points(a) != Points(b) {
			return Points(a) > Points(b)
		}
		if GoalDifference(a) != GoalDifference(b) {
			return GoalDifference(a) > GoalDifference(b)
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return nameCollator.CompareString(a.Name, b.Name) < 0
	})

	return ranked
}

// TopScorer returns the player with the most goals across all rosters.
// The second return value is false when there are no players. Exact ties
// go to the first player found in team order.
func TopScorer(teams []models.Team) (models.Player, bool) {
	return maxPlayer(teams, func(p models.Player) int { return p.Goals })
}

// MostCarded returns the player with the most cards (yellow plus red),
// with the same tie and absence behavior as TopScorer.
func MostCarded(teams []models.Team) (models.Player, bool) {
	return maxPlayer(teams, func(p models.Player) int { return p.YellowCards + p.RedCards })
}

func maxPlayer(teams []models.Team, score func(models.Player) int) (models.Player, bool) {
	var best models.Player
	found := false
	for _, t := range teams {
		for _, p := range t.Players {
			if !found || score(p) > score(best) {
				best = p
				found = true
			}
		}
	}
	return best, found
}
