package engine

// RuleViolation marks a programmer error: the caller submitted an
// action outside PossibleActions(), or asked for Reward on a
// non-terminal Round. These are not repaired or tolerated;
// ApplyAction and Reward panic with a RuleViolation rather than
// returning an error, so callers are expected to gate every mutation
// through PossibleActions() and IsTerminal().
type RuleViolation string

func (e RuleViolation) Error() string {
	return string(e)
}

const (
	errIllegalPickTrump  RuleViolation = "engine: PickTrump action is not in possible_actions()"
	errIllegalPlayCard   RuleViolation = "engine: PlayCard action is not in possible_actions()"
	errWrongPhase        RuleViolation = "engine: action does not match the round's current phase"
	errRewardNonTerminal RuleViolation = "engine: Reward called on a non-terminal round"
)
