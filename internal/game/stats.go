package game

import "math"

// Outcome is the slice of a terminated session that statistics need. Both
// database rows and archived in-memory sessions convert into it.
type Outcome struct {
	Category      Category
	Difficulty    Difficulty
	QuestionCount int
	Won           bool
}

func (s *Session) Outcome() Outcome {
	s.state.RLock()
	defer s.state.RUnlock()
	return Outcome{
		Category:      s.Category,
		Difficulty:    s.Difficulty,
		QuestionCount: len(s.Questions),
		Won:           s.Won,
	}
}

// Breakdown counts played and won games for one grouping key.
type Breakdown struct {
	Played int `json:"played"`
	Won    int `json:"won"`
}

// Statistics is the aggregate over all terminated sessions.
type Statistics struct {
	GamesPlayed      int                      `json:"gamesPlayed"`
	GamesWon         int                      `json:"gamesWon"`
	AverageQuestions int                      `json:"averageQuestions"`
	BestScore        int                      `json:"bestScore"`
	ByCategory       map[Category]Breakdown   `json:"byCategory"`
	ByDifficulty     map[Difficulty]Breakdown `json:"byDifficulty"`
}

// Aggregate is a pure function over outcomes. BestScore is the minimum
// question count among wins, with the full budget as sentinel when no game
// has been won yet.
func Aggregate(outcomes []Outcome) Statistics {
	stats := Statistics{
		BestScore:    MaxQuestions,
		ByCategory:   make(map[Category]Breakdown),
		ByDifficulty: make(map[Difficulty]Breakdown),
	}

	totalQuestions := 0
	for _, o := range outcomes {
		stats.GamesPlayed++
		totalQuestions += o.QuestionCount

		if o.Won {
			stats.GamesWon++
			if o.QuestionCount < stats.BestScore {
				stats.BestScore = o.QuestionCount
			}
		}

		bc := stats.ByCategory[o.Category]
		bc.Played++
		if o.Won {
			bc.Won++
		}
		stats.ByCategory[o.Category] = bc

		bd := stats.ByDifficulty[o.Difficulty]
		bd.Played++
		if o.Won {
			bd.Won++
		}
		stats.ByDifficulty[o.Difficulty] = bd
	}

	if stats.GamesPlayed > 0 {
		stats.AverageQuestions = int(math.Round(float64(totalQuestions) / float64(stats.GamesPlayed)))
	}
	return stats
}
