package roundcache

import (
	"encoding/json"
	"fmt"

	rounddomain "github.com/Black-And-White-Club/golfcard/app/modules/round/domain"
)

func encodeRound(round *rounddomain.Round) ([]byte, error) {
	data, err := json.Marshal(round)
	if err != nil {
		return nil, fmt.Errorf("failed to encode round: %w", err)
	}
	return data, nil
}

func decodeRound(data []byte) (*rounddomain.Round, error) {
	var round rounddomain.Round
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, fmt.Errorf("failed to decode round: %w", err)
	}
	if round.CompletedHoles == nil {
		round.CompletedHoles = []int{}
	}
	return &round, nil
}

func encodeHistory(rounds []*rounddomain.Round) ([]byte, error) {
	if rounds == nil {
		rounds = []*rounddomain.Round{}
	}
	data, err := json.Marshal(rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to encode history: %w", err)
	}
	return data, nil
}

func decodeHistory(data []byte) ([]*rounddomain.Round, error) {
	var rounds []*rounddomain.Round
	if err := json.Unmarshal(data, &rounds); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return rounds, nil
}
