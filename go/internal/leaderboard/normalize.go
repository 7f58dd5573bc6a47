package leaderboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vivekstills/boat/go/internal/models"
)

// RawEntry is one leaderboard row as the partner sends it. Pointer fields
// distinguish an absent value from a zero one.
type RawEntry struct {
	Rank     *flexNumber `json:"rank"`
	Username string      `json:"username"`
	Wagered  *flexNumber `json:"wagered"`
	Prize    *flexNumber `json:"prize"`
	Change   string      `json:"change"`
}

// flexNumber accepts both JSON numbers and numeric strings
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("not a number: %s", string(b))
	}
	*n = flexNumber(v)
	return nil
}

// ExtractFunc reports whether body has its shape and, if so, the entries it carries.
// A matched body that cannot be used returns matched=true with an error.
type ExtractFunc func(body []byte) (entries []RawEntry, matched bool, err error)

// Normalizer is one known response shape
type Normalizer struct {
	Name    string
	Extract ExtractFunc
}

// DefaultNormalizers returns the known shapes in precedence order:
// envelope {success,data}, bare array, {leaderboard}, then the legacy {players}.
func DefaultNormalizers() []Normalizer {
	return []Normalizer{
		{Name: "envelope", Extract: extractEnvelope},
		{Name: "array", Extract: extractArray},
		{Name: "leaderboard", Extract: extractKeyed("leaderboard")},
		{Name: "players", Extract: extractKeyed("players")},
	}
}

// Normalize runs body through normalizers, stopping at the first match
func Normalize(body []byte, normalizers []Normalizer) (string, []RawEntry, error) {
	for _, n := range normalizers {
		entries, matched, err := n.Extract(body)
		if !matched {
			continue
		}
		if err != nil {
			return n.Name, nil, err
		}
		return n.Name, entries, nil
	}
	return "", nil, ErrUnrecognizedShape
}

// ToPlayers converts raw entries, taking prizes from table when the feed omits them
func ToPlayers(entries []RawEntry, table models.PrizeTable) ([]models.Player, error) {
	players := make([]models.Player, 0, len(entries))
	for i, e := range entries {
		if e.Rank == nil {
			return nil, fmt.Errorf("%w: entry %d has no rank", ErrMalformedEntry, i)
		}
		rankF := float64(*e.Rank)
		if rankF != math.Trunc(rankF) || rankF < 1 || rankF > math.MaxInt32 {
			return nil, fmt.Errorf("%w: entry %d has invalid rank %v", ErrMalformedEntry, i, rankF)
		}
		rank := int(rankF)

		p := models.Player{
			Rank:     rank,
			Username: e.Username,
			Change:   models.ParseChange(e.Change),
		}
		if e.Wagered != nil {
			p.Wagered = float64(*e.Wagered)
		}
		if e.Prize != nil {
			p.Prize = float64(*e.Prize)
		} else {
			p.Prize = table.Prize(rank)
		}

		players = append(players, p)
	}
	return players, nil
}

func extractEnvelope(body []byte) ([]RawEntry, bool, error) {
	obj, ok := asObject(body)
	if !ok {
		return nil, false, nil
	}
	rawSuccess, hasSuccess := obj["success"]
	rawData, hasData := obj["data"]
	if !hasSuccess || !hasData {
		return nil, false, nil
	}

	var success bool
	if err := json.Unmarshal(rawSuccess, &success); err != nil {
		return nil, true, fmt.Errorf("%w: success flag is not a boolean", ErrMalformedEntry)
	}
	if !success {
		return nil, true, ErrUpstreamRejected
	}

	entries, err := decodeEntries(rawData)
	return entries, true, err
}

func extractArray(body []byte) ([]RawEntry, bool, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false, nil
	}
	entries, err := decodeEntries(trimmed)
	return entries, true, err
}

func extractKeyed(key string) ExtractFunc {
	return func(body []byte) ([]RawEntry, bool, error) {
		obj, ok := asObject(body)
		if !ok {
			return nil, false, nil
		}
		raw, found := obj[key]
		if !found {
			return nil, false, nil
		}
		entries, err := decodeEntries(raw)
		return entries, true, err
	}
}

func asObject(body []byte) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func decodeEntries(raw json.RawMessage) ([]RawEntry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: entries are not a list", ErrMalformedEntry)
	}
	var entries []RawEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	return entries, nil
}
