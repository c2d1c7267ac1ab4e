package engine

import (
	"errors"
	"fmt"
)

// Refusals. A command that returns one of these left the engine unchanged.
var (
	ErrInsufficientPoints = errors.New("not enough campaign points")
	ErrTokenCap           = errors.New("region campaign limit reached")
	ErrUnknownRegion      = errors.New("unknown region")
	ErrIneligibleRegion   = errors.New("party does not contest region")
	ErrUnknownCard        = errors.New("unknown card")
	ErrCardUsed           = errors.New("card already played")
	ErrCardNotOwned       = errors.New("card belongs to another party")
	ErrChoiceRequired     = errors.New("card requires a choice")
	ErrInvalidChoice      = errors.New("invalid choice")
	ErrWrongPhase         = errors.New("not allowed in this phase")
	ErrGameOver           = errors.New("game is over")
	ErrEventsDrawn        = errors.New("events already drawn this cycle")
	ErrElectionHeld       = errors.New("election already held this cycle")
	ErrEventNotPending    = errors.New("event is not pending")
)

var refusals = []error{
	ErrInsufficientPoints, ErrTokenCap, ErrUnknownRegion, ErrIneligibleRegion,
	ErrUnknownCard, ErrCardUsed, ErrCardNotOwned, ErrChoiceRequired,
	ErrInvalidChoice, ErrWrongPhase, ErrGameOver, ErrEventsDrawn, ErrElectionHeld,
	ErrEventNotPending,
}

// IsRefusal reports whether err is an expected, recoverable refusal.
func IsRefusal(err error) bool {
	for _, r := range refusals {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}

func (e *Engine) refuse(op string, sentinel error, format string, args ...any) error {
	err := sentinel
	if format != "" {
		err = fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)
	}
	e.logger.Debug("refused", "op", op, "reason", err)
	return err
}

// requirePhase refuses unless the engine is in one of the allowed phases.
func (e *Engine) requirePhase(op string, allowed ...Phase) error {
	if e.phase == PhaseGameOver {
		return e.refuse(op, ErrGameOver, "")
	}
	for _, p := range allowed {
		if e.phase == p {
			return nil
		}
	}
	return e.refuse(op, ErrWrongPhase, "%s during %s", op, e.phase)
}
