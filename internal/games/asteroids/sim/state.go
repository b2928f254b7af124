package sim

// Phase is the session state.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "NOT_STARTED"
	case PhasePlaying:
		return "PLAYING"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// GameState is the session scoreboard. Lives mirrors the ship.
type GameState struct {
	Score int
	Wave  int
	Lives int
	Phase Phase
}

// trigger is an edge-triggered state machine input.
type trigger int

const (
	triggerNone trigger = iota
	triggerStart
	triggerRestart
)

// applyTrigger consumes the pending trigger. Start is honoured only from
// NOT_STARTED and restart only from GAME_OVER; both run the same reset.
func (s *Sim) applyTrigger() {
	t := s.pending
	s.pending = triggerNone

	switch {
	case t == triggerStart && s.state.Phase == PhaseNotStarted,
		t == triggerRestart && s.state.Phase == PhaseGameOver:
		s.beginSession()
	}
}

// beginSession clears the world and lands in PLAYING with a fresh ship
// and the initial wave.
func (s *Sim) beginSession() {
	s.silence()
	s.reg.Clear()
	s.clock.Cancel()
	s.epoch++

	s.state = GameState{
		Score: 0,
		Wave:  1,
		Lives: s.cfg.Ship.Lives,
		Phase: PhasePlaying,
	}
	s.reg.SetShip(s.newShip())
	s.spawnWave()
	s.scheduleSaucer()
}

// gameOver moves PLAYING to GAME_OVER. It is a no-op in any other phase.
func (s *Sim) gameOver() {
	if s.state.Phase != PhasePlaying {
		return
	}
	s.state.Phase = PhaseGameOver
	s.silence()
}

// silence stops every sound the session owns.
func (s *Sim) silence() {
	if ship := s.reg.Ship(); ship != nil && ship.Thrusting {
		ship.Thrusting = false
		s.audio.Play(AudioEvent{Kind: SoundThrustStop})
	}
	for i := range s.reg.Saucers.Len() {
		s.stopSaucerLoop(s.reg.Saucers.At(i))
	}
}

// checkTerminal evaluates the end-of-tick terminal condition.
func (s *Sim) checkTerminal() {
	if ship := s.reg.Ship(); ship != nil && ship.Lives <= 0 {
		s.gameOver()
	}
}
