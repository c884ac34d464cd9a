package tgUtils

const (
	ErrReactionInvalid = "Bad Request: REACTION_INVALID"
)
