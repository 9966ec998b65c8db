package extract

import (
	"encoding/json"

	"github.com/vukovuko/football-rag/pkg/models"
	"github.com/vukovuko/football-rag/pkg/resolver"
	"github.com/vukovuko/football-rag/pkg/source"
)

// Source type codes that own a subtype table.
const (
	TypeCodeDuel          = 4
	TypeCodeClearance     = 9
	TypeCodeInterception  = 10
	TypeCodeDribble       = 14
	TypeCodeShot          = 16
	TypeCodeFoulCommitted = 22
	TypeCodeGoalkeeper    = 23
	TypeCodePass          = 30
)

// EventRows is everything one event document contributes: the core event,
// its directed relations, and at most one subtype row.
type EventRows struct {
	Event     models.Event
	Relations []models.EventRelation

	Pass         *models.Pass
	Shot         *models.Shot
	Duel         *models.Duel
	Dribble      *models.Dribble
	Interception *models.Interception
	Clearance    *models.Clearance
	Goalkeeper   *models.GoalkeeperEvent
	Foul         *models.Foul
}

// Event converts one event document. The match id comes from the filename.
// Exactly one subtype is attempted, chosen by the event's type code; type
// codes without a subtype table produce only the core row. Card types on
// fouls resolve by name like the lineup cards do.
func Event(matchID int, doc source.EventDoc, raw json.RawMessage, cardTypes map[string]int) (EventRows, error) {
	rows := EventRows{
		Event: models.Event{
			EventID:        doc.ID,
			MatchID:        matchID,
			EventIndex:     doc.Index,
			Period:         doc.Period,
			EventTimestamp: doc.Timestamp,
			Minute:         doc.Minute,
			Second:         doc.Second,
			TypeID:         doc.Type.ID,
			Possession:     doc.Possession,
			Duration:       doc.Duration,
			UnderPressure:  doc.UnderPressure,
			OffCamera:      doc.OffCamera,
			Out:            doc.Out,
			SourceData:     raw,
		},
	}

	rows.Event.PossessionTeamID = refID(doc.PossessionTeam)
	rows.Event.PlayPatternID = refID(doc.PlayPattern)
	rows.Event.TeamID = refID(doc.Team)
	rows.Event.PlayerID = refID(doc.Player)
	rows.Event.PositionID = refID(doc.Position)
	rows.Event.LocationX, rows.Event.LocationY = coordinates(doc.Location)

	for _, related := range doc.RelatedEvents {
		rows.Relations = append(rows.Relations, models.EventRelation{
			EventID:        doc.ID,
			RelatedEventID: related,
		})
	}

	switch doc.Type.ID {
	case TypeCodePass:
		if doc.Pass != nil {
			rows.Pass = passRow(doc.ID, doc.Pass)
		}
	case TypeCodeShot:
		if doc.Shot != nil {
			rows.Shot = shotRow(doc.ID, doc.Shot)
		}
	case TypeCodeDuel:
		if doc.Duel != nil {
			rows.Duel = &models.Duel{
				EventID:      doc.ID,
				DuelTypeID:   refID(doc.Duel.Type),
				OutcomeID:    refID(doc.Duel.Outcome),
				Counterpress: doc.Duel.Counterpress,
			}
		}
	case TypeCodeDribble:
		if doc.Dribble != nil {
			rows.Dribble = &models.Dribble{
				EventID:   doc.ID,
				OutcomeID: refID(doc.Dribble.Outcome),
				Nutmeg:    doc.Dribble.Nutmeg,
				Overrun:   doc.Dribble.Overrun,
				NoTouch:   doc.Dribble.NoTouch,
			}
		}
	case TypeCodeInterception:
		if doc.Interception != nil {
			rows.Interception = &models.Interception{
				EventID:   doc.ID,
				OutcomeID: refID(doc.Interception.Outcome),
			}
		}
	case TypeCodeClearance:
		if doc.Clearance != nil {
			rows.Clearance = &models.Clearance{
				EventID:    doc.ID,
				BodyPartID: refID(doc.Clearance.BodyPart),
				AerialWon:  doc.Clearance.AerialWon,
			}
		}
	case TypeCodeGoalkeeper:
		if doc.Goalkeeper != nil {
			endX, endY := coordinates(doc.Goalkeeper.EndLocation)
			rows.Goalkeeper = &models.GoalkeeperEvent{
				EventID:          doc.ID,
				GoalkeeperTypeID: refID(doc.Goalkeeper.Type),
				OutcomeID:        refID(doc.Goalkeeper.Outcome),
				TechniqueID:      refID(doc.Goalkeeper.Technique),
				BodyPartID:       refID(doc.Goalkeeper.BodyPart),
				EndX:             endX,
				EndY:             endY,
			}
		}
	case TypeCodeFoulCommitted:
		if doc.FoulCommitted != nil {
			foul := &models.Foul{
				EventID:   doc.ID,
				Penalty:   doc.FoulCommitted.Penalty,
				Advantage: doc.FoulCommitted.Advantage,
				Offensive: doc.FoulCommitted.Offensive,
			}
			if doc.FoulCommitted.Card != nil && doc.FoulCommitted.Card.Name != "" {
				id, err := resolver.Resolve(cardTypes, "card_types", doc.FoulCommitted.Card.Name)
				if err != nil {
					return EventRows{}, err
				}
				foul.CardTypeID = &id
			}
			rows.Foul = foul
		}
	}

	return rows, nil
}

// LookupRefs is the collect-phase accumulator for source-id controlled
// vocabularies. Conflicting names for one id keep the first seen; the source
// vocabulary is stable in practice.
type LookupRefs map[int]string

func (l LookupRefs) Add(ref *source.Ref) {
	if ref == nil {
		return
	}
	if _, ok := l[ref.ID]; !ok {
		l[ref.ID] = ref.Name
	}
}

// EventLookups groups one LookupRefs per controlled vocabulary an event
// document can reference.
type EventLookups struct {
	EventTypes      LookupRefs
	PlayPatterns    LookupRefs
	Positions       LookupRefs
	BodyParts       LookupRefs
	Outcomes        LookupRefs
	Techniques      LookupRefs
	Heights         LookupRefs
	PassTypes       LookupRefs
	ShotTypes       LookupRefs
	DuelTypes       LookupRefs
	GoalkeeperTypes LookupRefs
}

func NewEventLookups() *EventLookups {
	return &EventLookups{
		EventTypes:      make(LookupRefs),
		PlayPatterns:    make(LookupRefs),
		Positions:       make(LookupRefs),
		BodyParts:       make(LookupRefs),
		Outcomes:        make(LookupRefs),
		Techniques:      make(LookupRefs),
		Heights:         make(LookupRefs),
		PassTypes:       make(LookupRefs),
		ShotTypes:       make(LookupRefs),
		DuelTypes:       make(LookupRefs),
		GoalkeeperTypes: make(LookupRefs),
	}
}

// CollectEventKeys feeds every controlled-vocabulary reference and card type
// name in one event document into the collect-phase accumulators.
func CollectEventKeys(doc source.EventDoc, lookups *EventLookups, cardTypes *resolver.KeySet) {
	lookups.EventTypes.Add(&doc.Type)
	lookups.PlayPatterns.Add(doc.PlayPattern)
	lookups.Positions.Add(doc.Position)

	if doc.Pass != nil {
		lookups.Heights.Add(doc.Pass.Height)
		lookups.PassTypes.Add(doc.Pass.Type)
		lookups.BodyParts.Add(doc.Pass.BodyPart)
		lookups.Outcomes.Add(doc.Pass.Outcome)
		lookups.Techniques.Add(doc.Pass.Technique)
	}
	if doc.Shot != nil {
		lookups.ShotTypes.Add(doc.Shot.Type)
		lookups.BodyParts.Add(doc.Shot.BodyPart)
		lookups.Outcomes.Add(doc.Shot.Outcome)
		lookups.Techniques.Add(doc.Shot.Technique)
	}
	if doc.Duel != nil {
		lookups.DuelTypes.Add(doc.Duel.Type)
		lookups.Outcomes.Add(doc.Duel.Outcome)
	}
	if doc.Dribble != nil {
		lookups.Outcomes.Add(doc.Dribble.Outcome)
	}
	if doc.Interception != nil {
		lookups.Outcomes.Add(doc.Interception.Outcome)
	}
	if doc.Clearance != nil {
		lookups.BodyParts.Add(doc.Clearance.BodyPart)
	}
	if doc.Goalkeeper != nil {
		lookups.GoalkeeperTypes.Add(doc.Goalkeeper.Type)
		lookups.Outcomes.Add(doc.Goalkeeper.Outcome)
		lookups.Techniques.Add(doc.Goalkeeper.Technique)
		lookups.BodyParts.Add(doc.Goalkeeper.BodyPart)
	}
	if doc.FoulCommitted != nil && doc.FoulCommitted.Card != nil {
		cardTypes.Add(doc.FoulCommitted.Card.Name)
	}
}

func refID(ref *source.Ref) *int {
	if ref == nil {
		return nil
	}
	id := ref.ID
	return &id
}

func coordinates(location []float64) (*float64, *float64) {
	if len(location) < 2 {
		return nil, nil
	}
	x, y := location[0], location[1]
	return &x, &y
}

func passRow(eventID string, doc *source.PassDoc) *models.Pass {
	pass := &models.Pass{
		EventID:        eventID,
		RecipientID:    refID(doc.Recipient),
		Length:         doc.Length,
		Angle:          doc.Angle,
		HeightID:       refID(doc.Height),
		PassTypeID:     refID(doc.Type),
		BodyPartID:     refID(doc.BodyPart),
		OutcomeID:      refID(doc.Outcome),
		TechniqueID:    refID(doc.Technique),
		IsCross:        doc.Cross,
		IsSwitch:       doc.Switch,
		IsCutBack:      doc.CutBack,
		IsAssist:       doc.GoalAssist,
		AssistedShotID: doc.AssistedShotID,
	}
	pass.EndX, pass.EndY = coordinates(doc.EndLocation)
	return pass
}

func shotRow(eventID string, doc *source.ShotDoc) *models.Shot {
	shot := &models.Shot{
		EventID:     eventID,
		XG:          doc.XG,
		ShotTypeID:  refID(doc.Type),
		BodyPartID:  refID(doc.BodyPart),
		OutcomeID:   refID(doc.Outcome),
		TechniqueID: refID(doc.Technique),
		FirstTime:   doc.FirstTime,
		OneOnOne:    doc.OneOnOne,
		KeyPassID:   doc.KeyPassID,
	}
	shot.EndX, shot.EndY = coordinates(doc.EndLocation)
	if len(doc.EndLocation) >= 3 {
		z := doc.EndLocation[2]
		shot.EndZ = &z
	}
	return shot
}
