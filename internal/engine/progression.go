package engine

// Advance moves to the next scheduled election, resetting the player's
// points and tokens and applying drift. It returns false once the
// calendar is exhausted, and the engine is then over.
func (e *Engine) Advance() bool {
	if e.phase == PhaseGameOver {
		return false
	}

	e.index++
	if e.index >= len(e.ds.Schedule) {
		e.phase = PhaseGameOver
		e.pending = nil
		e.logger.Debug("game over", "score", e.score, "elections", len(e.history))
		return false
	}

	e.year = e.ds.Schedule[e.index]
	e.points = e.budget.PlayerPoints
	for id := range e.tokens {
		e.tokens[id] = 0
	}
	e.pending = nil
	e.drawn = false
	e.elected = false

	e.drift()
	e.phase = PhaseCampaign

	e.logger.Debug("advance", "year", e.year, "index", e.index)
	return true
}

// drift pulls every support value part way back to its baseline and adds
// symmetric noise. Regions and parties are visited in enumeration order
// so a seeded game replays exactly.
func (e *Engine) drift() {
	d := e.rules.Drift
	ceiling := e.rules.Support.Ceiling
	for _, r := range e.ds.Regions {
		row := e.support[r.ID]
		for _, p := range e.ds.Parties {
			current := row[p.ID]
			base := e.ds.BaselineSupport(r.ID, p.ID)
			noise := (e.rng.Float64() - 0.5) * 2 * d.Noise
			row[p.ID] = clamp(current+(base-current)*d.Rate+noise, 0, ceiling)
		}
	}
}
