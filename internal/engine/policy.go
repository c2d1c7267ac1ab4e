package engine

import "github.com/vovakirdan/ocanada/internal/dataset"

// PlayPolicyCard plays a policy card once per game. choice names a region
// or grouping when the card requires one and is ignored otherwise.
// On a refusal nothing changes.
func (e *Engine) PlayPolicyCard(id, choice string) error {
	if err := e.requirePhase("policy", PhaseCampaign); err != nil {
		return err
	}
	card, ok := e.ds.Policy(id)
	if !ok {
		return e.refuse("policy", ErrUnknownCard, "%s", id)
	}
	if e.used[id] {
		return e.refuse("policy", ErrCardUsed, "%s", id)
	}
	if !card.UsableBy(e.player) {
		return e.refuse("policy", ErrCardNotOwned, "%s belongs to %s", id, card.Owner)
	}
	if card.Cost > e.points {
		return e.refuse("policy", ErrInsufficientPoints, "need %d, have %d", card.Cost, e.points)
	}

	effects, err := e.bindChoice(card, choice)
	if err != nil {
		return err
	}

	e.applyEffects(effects)
	e.points -= card.Cost
	e.used[id] = true

	e.logger.Debug("policy played", "id", id, "choice", choice, "points", e.points)
	return nil
}

// bindChoice returns the card's effects with choice placeholders replaced.
func (e *Engine) bindChoice(card dataset.PolicyCard, choice string) ([]dataset.Effect, error) {
	var target dataset.Target
	switch card.RequiresChoice {
	case dataset.ChoiceNone:
		return card.Effects, nil
	case dataset.ChoiceRegion:
		if choice == "" {
			return nil, e.refuse("policy", ErrChoiceRequired, "%s needs a region", card.ID)
		}
		if _, ok := e.ds.Region(dataset.RegionID(choice)); !ok {
			return nil, e.refuse("policy", ErrInvalidChoice, "no region %q", choice)
		}
		target = dataset.RegionTarget(dataset.RegionID(choice))
	case dataset.ChoiceGrouping:
		if choice == "" {
			return nil, e.refuse("policy", ErrChoiceRequired, "%s needs a grouping", card.ID)
		}
		if _, ok := e.ds.Grouping(choice); !ok {
			return nil, e.refuse("policy", ErrInvalidChoice, "no grouping %q", choice)
		}
		target = dataset.GroupingTarget(choice)
	default:
		return nil, e.refuse("policy", ErrInvalidChoice, "%s has choice kind %q", card.ID, card.RequiresChoice)
	}

	bound := make([]dataset.Effect, len(card.Effects))
	for i, eff := range card.Effects {
		if eff.Target.Kind == dataset.TargetChoice {
			eff.Target = target
		}
		bound[i] = eff
	}
	return bound, nil
}
