package bot

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/stackbot/internal/config"
	"github.com/vovakirdan/stackbot/internal/tetris"
)

// lookAheadDiscount scales the best next-piece score before it is added.
const lookAheadDiscount = 0.5

// ScoredMove is a candidate together with its evaluated score.
type ScoredMove struct {
	Candidate
	Score float64
	Lines int // Rows cleared by this placement alone
}

// Decision is the outcome of one search.
type Decision struct {
	Candidate
	Score      float64 // Score of the chosen candidate
	BestScore  float64 // Highest score found
	Candidates int     // Number of legal placements
	Ties       int     // Candidates sharing BestScore
	Random     bool    // Chosen by error injection rather than by score
}

// Searcher picks placements for one difficulty profile.
// It is not safe for concurrent use; the engine owns exactly one.
type Searcher struct {
	profile config.Profile
	rng     *rand.Rand
	sleep   func(time.Duration)
}

// NewSearcher creates a searcher. All randomness (tie-breaks and deliberate
// mistakes) is drawn from rng; a nil rng is replaced by a fixed-seed source.
func NewSearcher(profile config.Profile, rng *rand.Rand) *Searcher {
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}
	return &Searcher{
		profile: profile,
		rng:     rng,
		sleep:   time.Sleep,
	}
}

// SetSleep replaces the function used to pay the think delay.
func (s *Searcher) SetSleep(fn func(time.Duration)) {
	if fn == nil {
		fn = func(time.Duration) {}
	}
	s.sleep = fn
}

// Profile returns the profile the searcher was built with.
func (s *Searcher) Profile() config.Profile {
	return s.profile
}

// ScoreMoves enumerates and scores every placement of cur on g. When the
// profile looks ahead and next is known, each score also includes half of
// the best score next can reach on the resulting board.
func (s *Searcher) ScoreMoves(g tetris.Grid, cur tetris.Piece, next *tetris.Piece) []ScoredMove {
	moves := PossibleMoves(&g, cur)
	scored := make([]ScoredMove, 0, len(moves))
	w := s.profile.Weights

	for _, c := range moves {
		result, lines := Simulate(g, cur, c)
		score := Evaluate(w, &result, lines)

		if s.profile.LookAhead && next != nil {
			score += lookAheadDiscount * bestScore(w, result, *next)
		}
		scored = append(scored, ScoredMove{Candidate: c, Score: score, Lines: lines})
	}
	return scored
}

// bestScore returns the highest single-placement score for p on g, or -Inf
// if p cannot be placed at all.
func bestScore(w config.Weights, g tetris.Grid, p tetris.Piece) float64 {
	best := math.Inf(-1)
	for _, c := range PossibleMoves(&g, p) {
		result, lines := Simulate(g, p, c)
		best = math.Max(best, Evaluate(w, &result, lines))
	}
	return best
}

// Decide runs one full search for cur and returns the chosen placement.
// ok is false when cur has no legal placement. The profile's think delay
// is paid before returning, whatever the outcome.
func (s *Searcher) Decide(g tetris.Grid, cur tetris.Piece, next *tetris.Piece) (d Decision, ok bool) {
	defer s.think()

	scored := s.ScoreMoves(g, cur, next)
	if len(scored) == 0 {
		return Decision{}, false
	}

	best := math.Inf(-1)
	var ties []int
	for i, m := range scored {
		switch {
		case m.Score > best:
			best = m.Score
			ties = append(ties[:0], i)
		case m.Score == best:
			ties = append(ties, i)
		}
	}
	// Every score was NaN; treat all candidates as tied.
	if len(ties) == 0 {
		for i := range scored {
			ties = append(ties, i)
		}
	}

	d = Decision{
		BestScore:  best,
		Candidates: len(scored),
		Ties:       len(ties),
	}

	var pick ScoredMove
	if s.rng.Float64() < s.profile.ErrorRate {
		pick = scored[s.rng.Intn(len(scored))]
		d.Random = true
	} else {
		pick = scored[ties[s.rng.Intn(len(ties))]]
	}
	d.Candidate = pick.Candidate
	d.Score = pick.Score
	return d, true
}

func (s *Searcher) think() {
	if s.profile.ThinkDelay > 0 {
		s.sleep(s.profile.ThinkDelay)
	}
}
