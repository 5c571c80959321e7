package model

import "errors"

// Errors returned by Game. Use errors.Is to inspect them.
var (
	ErrGameFull         = errors.New("game is full")
	ErrNotInGame        = errors.New("player not in game")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrGameOver         = errors.New("game is over")
	ErrIllegalMove      = errors.New("illegal move")
	ErrPromotionPending = errors.New("promotion pending")
	ErrNoPromotion      = errors.New("no promotion pending")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
	ErrNotAuthorized    = errors.New("not authorized to join this game")
)
