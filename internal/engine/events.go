package engine

import "github.com/vovakirdan/ocanada/internal/dataset"

// DrawEvents draws this cycle's events from the deck: one card, or two
// with the configured chance, chosen among cards active this year.
// Drawn cards never return to the deck. An empty draw is not an error.
func (e *Engine) DrawEvents() ([]dataset.EventCard, error) {
	if err := e.requirePhase("draw", PhaseCampaign); err != nil {
		return nil, err
	}
	if e.drawn {
		return nil, e.refuse("draw", ErrEventsDrawn, "%d", e.year)
	}

	var relevant []dataset.EventCard
	for _, c := range e.deck {
		if c.ActiveIn(e.year) {
			relevant = append(relevant, c)
		}
	}

	count := 1
	if e.rng.Float64() < e.rules.Events.TwoEventChance {
		count = 2
	}
	e.rng.Shuffle(len(relevant), func(i, j int) {
		relevant[i], relevant[j] = relevant[j], relevant[i]
	})
	if count > len(relevant) {
		count = len(relevant)
	}
	drawn := relevant[:count]

	for _, c := range drawn {
		e.removeFromDeck(c.ID)
	}
	e.pending = make([]dataset.EventCard, len(drawn))
	copy(e.pending, drawn)
	e.drawn = true
	if len(e.pending) > 0 {
		e.phase = PhaseEvent
	}

	ids := make([]string, len(drawn))
	for i, c := range drawn {
		ids[i] = c.ID
	}
	e.logger.Debug("events drawn", "year", e.year, "cards", ids, "deck", len(e.deck))
	return e.PendingEvents(), nil
}

// ApplyEvent resolves a pending event's effects and clears it from the
// pending list. Cards that were not drawn this cycle, or were already
// applied, are refused. When the last pending event is applied the engine
// returns to campaigning.
func (e *Engine) ApplyEvent(card dataset.EventCard) error {
	if err := e.requirePhase("apply event", PhaseCampaign, PhaseEvent); err != nil {
		return err
	}

	idx := -1
	for i, c := range e.pending {
		if c.ID == card.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return e.refuse("apply event", ErrEventNotPending, "%s", card.ID)
	}

	e.applyEffects(e.pending[idx].Effects)
	e.pending = append(e.pending[:idx], e.pending[idx+1:]...)
	if len(e.pending) == 0 && e.phase == PhaseEvent {
		e.phase = PhaseCampaign
	}

	e.logger.Debug("event applied", "id", card.ID, "title", card.Title, "pending", len(e.pending))
	return nil
}

func (e *Engine) removeFromDeck(id string) {
	for i, c := range e.deck {
		if c.ID == id {
			e.deck = append(e.deck[:i], e.deck[i+1:]...)
			return
		}
	}
}

// applyEffects resolves each effect in order. Leader references are
// resolved per effect, so earlier effects can change who leads.
func (e *Engine) applyEffects(effects []dataset.Effect) {
	ceiling := e.rules.Support.Ceiling
	for _, eff := range effects {
		party, ok := e.resolveParty(eff.Party)
		if !ok {
			continue
		}
		p, _ := e.ds.Party(party)
		for _, region := range e.resolveTargets(eff.Target) {
			if !p.Contests(region) {
				continue
			}
			row, ok := e.support[region]
			if !ok {
				continue
			}
			row[party] = clamp(row[party]+eff.Delta, 0, ceiling)
		}
	}
}

func (e *Engine) resolveParty(ref dataset.PartyRef) (dataset.PartyID, bool) {
	switch ref.Kind {
	case dataset.PartyRefPlayer:
		return e.player, true
	case dataset.PartyRefLeadingOpponent:
		return e.LeadingOpponent(), true
	default:
		if _, ok := e.ds.Party(ref.ID); !ok {
			return "", false
		}
		return ref.ID, true
	}
}

// resolveTargets expands a target to region IDs. Unknown targets and
// unfilled choice placeholders resolve to nothing.
func (e *Engine) resolveTargets(t dataset.Target) []dataset.RegionID {
	switch t.Kind {
	case dataset.TargetRegion:
		if _, ok := e.ds.Region(t.Region); !ok {
			return nil
		}
		return []dataset.RegionID{t.Region}
	case dataset.TargetGrouping:
		members, _ := e.ds.Grouping(t.Grouping)
		return members
	default:
		return nil
	}
}
