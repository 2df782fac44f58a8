// Package codec converts games to and from their JSON representation.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/merev/gsr-api/internal/domain"
)

// ToDTO converts a game into its serializable form.
func ToDTO(g *domain.Game) GameDTO {
	players := g.Players()
	dto := GameDTO{
		Players: make([]PlayerDTO, 0, len(players)),
		Rounds:  make([]RoundDTO, 0, domain.RoundCount),
		IsEnded: g.IsEnded(),
	}

	for _, p := range players {
		pd := PlayerDTO{ID: p.ID().String(), Name: p.Name()}
		if from, ok := p.SkipFromRound(); ok {
			pd.SkipFromRound = &from
		}
		dto.Players = append(dto.Players, pd)
	}

	for _, r := range g.Rounds() {
		rd := RoundDTO{
			Type:     r.Type().Name(),
			Scores:   make(map[string]RoundScoreDTO),
			IsLocked: r.IsLocked(),
		}
		for id, rs := range r.Scores() {
			sd := RoundScoreDTO{Type: string(rs.Kind())}
			if s, ok := domain.EnteredValue(rs); ok {
				v := s.Value()
				sd.Value = &v
			}
			rd.Scores[id.String()] = sd
		}
		dto.Rounds = append(dto.Rounds, rd)
	}
	return dto
}

// ToDomain rebuilds a game from a DTO, applying every domain rule.
func ToDomain(dto GameDTO) (*domain.Game, error) {
	players := make([]domain.Player, 0, len(dto.Players))
	for i, pd := range dto.Players {
		id, err := domain.NewPlayerID(pd.ID)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i, err)
		}
		p, err := domain.HydratePlayer(id, pd.Name, pd.SkipFromRound)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i, err)
		}
		players = append(players, p)
	}

	rounds := make([]domain.Round, 0, len(dto.Rounds))
	for i, rd := range dto.Rounds {
		rt, err := domain.ParseRoundType(rd.Type)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
		scores := make(map[domain.PlayerID]domain.RoundScore, len(rd.Scores))
		for rawID, sd := range rd.Scores {
			id, err := domain.NewPlayerID(rawID)
			if err != nil {
				return nil, fmt.Errorf("round %d: %w", i, err)
			}
			rs, err := roundScoreFromDTO(sd)
			if err != nil {
				return nil, fmt.Errorf("round %d, player %s: %w", i, rawID, err)
			}
			scores[id] = rs
		}
		r, err := domain.HydrateRound(rt, scores, rd.IsLocked)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
		rounds = append(rounds, r)
	}

	return domain.HydrateGame(players, rounds, dto.IsEnded)
}

func roundScoreFromDTO(sd RoundScoreDTO) (domain.RoundScore, error) {
	switch domain.RoundScoreKind(sd.Type) {
	case domain.KindPending:
		return domain.Pending{}, nil
	case domain.KindSkipped:
		return domain.Skipped{}, nil
	case domain.KindEntered:
		if sd.Value == nil {
			return nil, fmt.Errorf("entered score without value")
		}
		s, err := domain.NewScore(*sd.Value)
		if err != nil {
			return nil, err
		}
		return domain.Entered{Score: s}, nil
	default:
		return nil, fmt.Errorf("unknown score type %q", sd.Type)
	}
}

// Marshal encodes g as JSON.
func Marshal(g *domain.Game) ([]byte, error) {
	return json.Marshal(ToDTO(g))
}

// Unmarshal decodes JSON into a game. Failures are *DecodeError values:
// MalformedJSON when the bytes are not JSON, InvalidShape when required
// keys are missing or mistyped, InvalidGame when domain rules reject it.
func Unmarshal(data []byte) (*domain.Game, error) {
	var shape gameShape
	if err := json.Unmarshal(data, &shape); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &DecodeError{Kind: InvalidShape, Err: err}
		}
		return nil, &DecodeError{Kind: MalformedJSON, Err: err}
	}
	if err := checkShape(shape); err != nil {
		return nil, err
	}

	var dto GameDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, &DecodeError{Kind: InvalidShape, Err: err}
	}

	g, err := ToDomain(dto)
	if err != nil {
		return nil, &DecodeError{Kind: InvalidGame, Err: err}
	}
	return g, nil
}

func checkShape(s gameShape) error {
	if s.Players == nil {
		return shapeErrorf("missing players")
	}
	if s.Rounds == nil {
		return shapeErrorf("missing rounds")
	}
	if s.IsEnded == nil {
		return shapeErrorf("missing isEnded")
	}
	for i, p := range *s.Players {
		if p.ID == nil || p.Name == nil {
			return shapeErrorf("player %d: missing id or name", i)
		}
	}
	for i, r := range *s.Rounds {
		if r.Type == nil || r.Scores == nil || r.IsLocked == nil {
			return shapeErrorf("round %d: missing type, scores or isLocked", i)
		}
		keys := make([]string, 0, len(*r.Scores))
		for k := range *r.Scores {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			sc := (*r.Scores)[k]
			if sc == nil || sc.Type == nil {
				return shapeErrorf("round %d, player %s: missing score type", i, k)
			}
		}
	}
	return nil
}
