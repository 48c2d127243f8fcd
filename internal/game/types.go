package game

import (
	"sync"
	"time"
)

type Category string

const (
	CategoryAnimal  Category = "animal"
	CategoryPlace   Category = "place"
	CategoryObject  Category = "object"
	CategoryFood    Category = "food"
	CategoryPerson  Category = "person"
	CategoryConcept Category = "concept"
)

var Categories = []Category{
	CategoryAnimal,
	CategoryPlace,
	CategoryObject,
	CategoryFood,
	CategoryPerson,
	CategoryConcept,
}

func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ValidDifficulty(d Difficulty) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

type Mode string

const (
	// ModeHumanAsks: the caller supplies questions, the LLM holds the secret.
	ModeHumanAsks Mode = "human-asks"
	// ModeLLMAsks: both roles are LLM-backed, the caller paces turns.
	ModeLLMAsks Mode = "llm-asks"
)

func ValidMode(m Mode) bool {
	return m == ModeHumanAsks || m == ModeLLMAsks
}

// MaxQuestions is the question budget for a single session.
const MaxQuestions = 20

// Word is the secret selected for a session, immutable once chosen.
type Word struct {
	Text       string     `json:"text"`
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Hints      []string   `json:"hints"`
}

// QuestionEntry is one counted question/answer exchange.
// Sequence numbers are dense starting at 1.
type QuestionEntry struct {
	Sequence   int    `json:"sequence"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	AskedByLLM bool   `json:"askedByLLM"`
}

// Session is the authoritative record for one play-through.
// All mutating operations are serialized through mu; TryLock failures
// surface as ErrSessionBusy so a turn in flight is never interleaved.
// mu is held for the whole turn, LLM call included, so read-only
// snapshots synchronize on state instead: every field write happens
// under state, every snapshot read under its read lock.
type Session struct {
	ID         string          `json:"id"`
	Word       string          `json:"-"`
	Category   Category        `json:"category"`
	Difficulty Difficulty      `json:"difficulty"`
	Mode       Mode            `json:"mode"`
	Hints      []string        `json:"-"`
	HintsUsed  int             `json:"hintsUsed"`
	Questions  []QuestionEntry `json:"questions"`
	Active     bool            `json:"active"`
	Paused     bool            `json:"paused"`
	Won        bool            `json:"won"`
	StartedAt  time.Time       `json:"startedAt"`
	PausedAt   time.Time       `json:"-"`
	EndedAt    time.Time       `json:"endedAt,omitempty"`

	mu    sync.Mutex
	state sync.RWMutex
}

// QuestionCount reports the number of counted questions. Rejected
// questions in llm-asks mode never append, so the log length is the count.
func (s *Session) QuestionCount() int {
	s.state.RLock()
	defer s.state.RUnlock()
	return len(s.Questions)
}

// Elapsed reports play time excluding paused intervals.
func (s *Session) Elapsed() time.Duration {
	s.state.RLock()
	defer s.state.RUnlock()
	return s.elapsedLocked()
}

// elapsedLocked is Elapsed for callers already holding state. Resume folds
// the pause duration into StartedAt, so a live session only needs the
// currently-open pause handled here.
func (s *Session) elapsedLocked() time.Duration {
	if s.Paused && !s.PausedAt.IsZero() {
		return s.PausedAt.Sub(s.StartedAt)
	}
	if !s.Active && !s.EndedAt.IsZero() {
		return s.EndedAt.Sub(s.StartedAt)
	}
	return time.Since(s.StartedAt)
}

// History returns question/answer pairs in ask order for prompt building.
func (s *Session) History() []QA {
	s.state.RLock()
	defer s.state.RUnlock()
	qa := make([]QA, len(s.Questions))
	for i, q := range s.Questions {
		qa[i] = QA{Question: q.Question, Answer: q.Answer}
	}
	return qa
}

// QA is a single prior exchange as seen by the LLM operations.
type QA struct {
	Question string
	Answer   string
}

// Summary is the session view surfaced to untrusted callers.
// The secret word is withheld while the session is active.
type Summary struct {
	ID            string     `json:"id"`
	Category      Category   `json:"category"`
	Difficulty    Difficulty `json:"difficulty"`
	Mode          Mode       `json:"mode"`
	QuestionCount int        `json:"questionCount"`
	HintsUsed     int        `json:"hintsUsed"`
	TotalHints    int        `json:"totalHints"`
	Active        bool       `json:"active"`
	Paused        bool       `json:"paused"`
	Won           bool       `json:"won"`
	ElapsedSecs   int        `json:"elapsedSeconds"`
}

func (s *Session) Summarize() Summary {
	s.state.RLock()
	defer s.state.RUnlock()
	return Summary{
		ID:            s.ID,
		Category:      s.Category,
		Difficulty:    s.Difficulty,
		Mode:          s.Mode,
		QuestionCount: len(s.Questions),
		HintsUsed:     s.HintsUsed,
		TotalHints:    len(s.Hints),
		Active:        s.Active,
		Paused:        s.Paused,
		Won:           s.Won,
		ElapsedSecs:   int(s.elapsedLocked().Seconds()),
	}
}
