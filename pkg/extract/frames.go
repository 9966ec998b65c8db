package extract

import (
	"encoding/json"

	"github.com/vukovuko/football-rag/pkg/geometry"
	"github.com/vukovuko/football-rag/pkg/models"
	"github.com/vukovuko/football-rag/pkg/source"
)

// Frame converts one tracking frame. The match id comes from the filename.
// The visible area size is the shoelace area of the camera polygon, nil when
// the polygon has fewer than three vertices. Each tracked player gets its
// distance to the frame's actor (nil when no actor is flagged) and whether
// it sits inside the visible area.
func Frame(matchID int, doc source.FrameDoc, raw json.RawMessage) (models.Frame, []models.FramePlayer) {
	polygon := visiblePolygon(doc.VisibleArea)

	frame := models.Frame{
		EventID:         doc.EventUUID,
		MatchID:         matchID,
		VisibleArea:     doc.VisibleArea,
		VisibleAreaSize: geometry.PolygonArea(polygon),
		SourceData:      raw,
	}

	actor := actorPosition(doc.FreezeFrame)

	var players []models.FramePlayer
	for i, tracked := range doc.FreezeFrame {
		player := models.FramePlayer{
			EventID:     doc.EventUUID,
			PlayerIndex: i,
			Teammate:    tracked.Teammate,
			Actor:       tracked.Actor,
			Keeper:      tracked.Keeper,
		}

		if len(tracked.Location) >= 2 {
			player.X = tracked.Location[0]
			player.Y = tracked.Location[1]

			if actor != nil {
				distance := geometry.Distance(geometry.Point{X: player.X, Y: player.Y}, *actor)
				player.DistanceFromActor = &distance
			}
			if len(polygon) >= 3 {
				inside := geometry.PointInPolygon(geometry.Point{X: player.X, Y: player.Y}, polygon)
				player.InVisibleArea = &inside
			}
		}

		players = append(players, player)
	}

	return frame, players
}

func visiblePolygon(raw json.RawMessage) []geometry.Point {
	if len(raw) == 0 {
		return nil
	}
	var coords []float64
	if err := json.Unmarshal(raw, &coords); err != nil {
		return nil
	}
	return geometry.PolygonFromFlat(coords)
}

func actorPosition(players []source.FrameFreezePlayerDoc) *geometry.Point {
	for _, player := range players {
		if player.Actor && len(player.Location) >= 2 {
			return &geometry.Point{X: player.Location[0], Y: player.Location[1]}
		}
	}
	return nil
}
