package flowexcalidraw

const (
	SEED_MULTIPLIER = 16807
	SEED_MODULUS    = 2147483647
	INITIAL_SEED    = 42
)

// Seeder is a Park-Miller generator. Excalidraw uses element seeds to draw its
// hand-drawn strokes, so they only have to be repeatable.
type Seeder struct {
	state int64
}

func NewSeeder(seed int64) *Seeder {
	return &Seeder{state: seed}
}

func (s *Seeder) Next() int64 {
	s.state = s.state * SEED_MULTIPLIER % SEED_MODULUS
	return s.state
}
