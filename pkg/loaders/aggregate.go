package loaders

import (
	"context"
	"fmt"
)

// Aggregation statements. Every field is a full replace computed from the
// fact tables, so re-running the pass is idempotent. Goal and card detection
// join through the name-keyed lookup tables rather than trusting numeric
// codes from the source vocabulary. Run against a partially-loaded event set
// these produce undercounted totals, not errors; the fact tables stay the
// source of truth.
var aggregateStatements = []struct {
	name  string
	query string
}{
	{
		name: "total_matches",
		query: `UPDATE players SET total_matches = COALESCE((
			SELECT COUNT(DISTINCT l.match_id) FROM lineups l
			WHERE l.player_id = players.player_id
		), 0)`,
	},
	{
		name: "total_goals",
		query: `UPDATE players SET total_goals = COALESCE((
			SELECT COUNT(*) FROM shots s
			JOIN events e ON e.event_id = s.event_id
			JOIN outcomes o ON o.id = s.outcome_id
			WHERE e.player_id = players.player_id AND o.name = 'Goal'
		), 0)`,
	},
	{
		name: "total_assists",
		query: `UPDATE players SET total_assists = COALESCE((
			SELECT COUNT(*) FROM passes p
			JOIN events e ON e.event_id = p.event_id
			WHERE e.player_id = players.player_id AND p.is_assist
		), 0)`,
	},
	{
		name: "total_yellow_cards",
		query: `UPDATE players SET total_yellow_cards = COALESCE((
			SELECT COUNT(*) FROM cards c
			JOIN card_types ct ON ct.id = c.card_type_id
			WHERE c.player_id = players.player_id AND ct.name IN ('Yellow Card', 'Second Yellow')
		), 0)`,
	},
	{
		name: "total_red_cards",
		query: `UPDATE players SET total_red_cards = COALESCE((
			SELECT COUNT(*) FROM cards c
			JOIN card_types ct ON ct.id = c.card_type_id
			WHERE c.player_id = players.player_id AND ct.name IN ('Red Card', 'Second Yellow')
		), 0)`,
	},
	{
		name: "total_minutes",
		query: `UPDATE players SET total_minutes = COALESCE((
			SELECT SUM(pp.duration_seconds) / 60.0 FROM player_positions pp
			WHERE pp.player_id = players.player_id
		), 0)`,
	},
}

// Aggregate recomputes every player's career totals from the loaded fact
// tables. It must run after the lineup, card and event loads are complete.
func (l *Loader) Aggregate(ctx context.Context) error {
	l.logger.WithContext(ctx).Info("Recomputing player aggregates")

	for _, statement := range aggregateStatements {
		if _, err := l.db.ExecContext(ctx, statement.query); err != nil {
			l.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{"field": statement.name}).Error("Aggregate update failed")
			return fmt.Errorf("aggregate %s: %w", statement.name, err)
		}
		l.logger.WithContext(ctx).WithFields(map[string]any{"field": statement.name}).Debug("Aggregate field recomputed")
	}

	l.logger.WithContext(ctx).Info("Player aggregates recomputed")
	return nil
}
