package extract

import (
	"encoding/json"
	"fmt"

	"github.com/vukovuko/football-rag/pkg/models"
	"github.com/vukovuko/football-rag/pkg/resolver"
	"github.com/vukovuko/football-rag/pkg/source"
)

// LineupRows is everything one team block of a lineup file contributes.
type LineupRows struct {
	Players   []models.Player
	Lineups   []models.Lineup
	Positions []models.PlayerPosition
	Cards     []models.Card
}

// Lineup converts one team block. The match id comes from the filename. Card
// types arrive as names and resolve through the reconciled card-types map;
// position ids are source-provided. A position stint with no end time runs
// to fullMatchMinutes when deriving its duration, while the raw null stays
// in the player's backup record.
func Lineup(matchID int, doc source.LineupTeamDoc, countries, cardTypes map[string]int, fullMatchMinutes int) (LineupRows, error) {
	var rows LineupRows

	for _, raw := range doc.Lineup {
		var player source.LineupPlayerDoc
		if err := json.Unmarshal(raw, &player); err != nil {
			return LineupRows{}, fmt.Errorf("decode lineup entry for team %d: %w", doc.TeamID, err)
		}

		countryID, err := resolveCountry(player.Country, countries)
		if err != nil {
			return LineupRows{}, err
		}
		rows.Players = append(rows.Players, models.Player{
			PlayerID:  player.PlayerID,
			Name:      player.PlayerName,
			Nickname:  player.PlayerNickname,
			CountryID: countryID,
		})
		rows.Lineups = append(rows.Lineups, models.Lineup{
			MatchID:      matchID,
			PlayerID:     player.PlayerID,
			TeamID:       doc.TeamID,
			JerseyNumber: player.JerseyNumber,
			SourceData:   raw,
		})

		for i, position := range player.Positions {
			duration, err := stintDuration(position.From, position.To, fullMatchMinutes)
			if err != nil {
				return LineupRows{}, fmt.Errorf("player %d stint %d: %w", player.PlayerID, i, err)
			}
			positionID := position.PositionID
			rows.Positions = append(rows.Positions, models.PlayerPosition{
				MatchID:         matchID,
				PlayerID:        player.PlayerID,
				StintIndex:      i,
				PositionID:      &positionID,
				FromTime:        position.From,
				ToTime:          position.To,
				FromPeriod:      position.FromPeriod,
				ToPeriod:        position.ToPeriod,
				StartReason:     position.StartReason,
				EndReason:       position.EndReason,
				DurationSeconds: duration,
			})
		}

		for i, card := range player.Cards {
			row := models.Card{
				MatchID:   matchID,
				PlayerID:  player.PlayerID,
				CardIndex: i,
				CardTime:  card.Time,
				Period:    card.Period,
				Reason:    card.Reason,
			}
			if card.CardType != "" {
				id, err := resolver.Resolve(cardTypes, "card_types", card.CardType)
				if err != nil {
					return LineupRows{}, err
				}
				row.CardTypeID = &id
			}
			rows.Cards = append(rows.Cards, row)
		}
	}

	return rows, nil
}

// CollectLineupKeys feeds the country names, card type names and position
// vocabulary one team block references into the collect-phase accumulators.
// Positions collect here because position stints are written before any
// event file has contributed the positions lookup.
func CollectLineupKeys(doc source.LineupTeamDoc, countries, cardTypes *resolver.KeySet, positions LookupRefs) error {
	for _, raw := range doc.Lineup {
		var player source.LineupPlayerDoc
		if err := json.Unmarshal(raw, &player); err != nil {
			return fmt.Errorf("decode lineup entry for team %d: %w", doc.TeamID, err)
		}
		addRefName(player.Country, countries)
		for _, card := range player.Cards {
			cardTypes.Add(card.CardType)
		}
		for _, position := range player.Positions {
			positions.Add(&source.Ref{ID: position.PositionID, Name: position.Position})
		}
	}
	return nil
}

// stintDuration derives the seconds a stint lasted. A missing end time means
// the player stayed on until full time.
func stintDuration(from string, to *string, fullMatchMinutes int) (float64, error) {
	start, err := parseClock(from)
	if err != nil {
		return 0, err
	}

	end := float64(fullMatchMinutes * 60)
	if to != nil {
		end, err = parseClock(*to)
		if err != nil {
			return 0, err
		}
	}

	duration := end - start
	if duration < 0 {
		duration = 0
	}
	return duration, nil
}
