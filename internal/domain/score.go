package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	MinScore  = 0
	MaxScore  = 300
	ScoreStep = 5
)

var (
	ErrInvalidScore     = errors.New("invalid score")
	ErrEmptyPlayerID    = errors.New("player id cannot be empty")
	ErrUnknownRoundType = errors.New("unknown round type")
)

// Score is a validated round score: 0..300 in steps of 5.
type Score struct {
	value int
}

// NewScore validates v and returns it as a Score.
func NewScore(v int) (Score, error) {
	if v < MinScore || v > MaxScore || v%ScoreStep != 0 {
		return Score{}, fmt.Errorf("%w: %d must be %d-%d and divisible by %d", ErrInvalidScore, v, MinScore, MaxScore, ScoreStep)
	}
	return Score{value: v}, nil
}

// ZeroScore is the round winner's score.
func ZeroScore() Score {
	return Score{}
}

func (s Score) Value() int { return s.value }

// IsWin reports whether s is the winning score of a round.
func (s Score) IsWin() bool { return s.value == 0 }

// PlayerID identifies a player for the lifetime of a game.
type PlayerID struct {
	value string
}

// NewPlayerID wraps an externally supplied identifier.
func NewPlayerID(v string) (PlayerID, error) {
	if strings.TrimSpace(v) == "" {
		return PlayerID{}, ErrEmptyPlayerID
	}
	return PlayerID{value: v}, nil
}

// GeneratePlayerID returns a random UUID based identifier.
func GeneratePlayerID() PlayerID {
	return PlayerID{value: uuid.NewString()}
}

func (id PlayerID) String() string { return id.value }

func (id PlayerID) IsZero() bool { return id.value == "" }
