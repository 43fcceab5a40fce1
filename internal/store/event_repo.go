package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// eventRepo implements EventRepo on SQLite.
type eventRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events
		 (sequence, timestamp, session_id, learner_id, question_id, skill_id, kind, correct, choice_index, attempt, points, time_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, time.Now().UTC(), data.SessionID, data.LearnerID, data.QuestionID,
		data.SkillID, data.Kind, data.Correct, data.ChoiceIndex, data.Attempt,
		data.Points, data.TimeMs,
	)
	if err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendBadgeEvent(ctx context.Context, data BadgeEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO badge_events
		 (sequence, timestamp, session_id, learner_id, badge_id, badge_type, tier)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seq, time.Now().UTC(), data.SessionID, data.LearnerID, data.BadgeID,
		data.BadgeType, data.Tier,
	)
	if err != nil {
		return fmt.Errorf("append badge event: %w", err)
	}
	return nil
}

func (r *eventRepo) SkillAccuracy(ctx context.Context, skillID string) (float64, error) {
	var row struct {
		Attempts int `db:"attempts"`
		Correct  int `db:"correct"`
	}
	err := r.db.GetContext(ctx, &row,
		`SELECT COUNT(*) AS attempts, COALESCE(SUM(correct), 0) AS correct
		 FROM answer_events WHERE skill_id = ?`,
		skillID,
	)
	if err != nil {
		return 0, fmt.Errorf("query skill accuracy: %w", err)
	}
	if row.Attempts == 0 {
		return 0, nil
	}
	return float64(row.Correct) / float64(row.Attempts), nil
}

func (r *eventRepo) AnswerTotals(ctx context.Context) ([]SkillTotals, error) {
	var totals []SkillTotals
	err := r.db.SelectContext(ctx, &totals,
		`SELECT skill_id, COUNT(*) AS attempts, COALESCE(SUM(correct), 0) AS correct
		 FROM answer_events GROUP BY skill_id ORDER BY skill_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query answer totals: %w", err)
	}
	return totals, nil
}

func (r *eventRepo) BadgeCounts(ctx context.Context) (map[string]int, int, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT badge_type, COUNT(*) FROM badge_events GROUP BY badge_type`,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query badge counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	total := 0
	for rows.Next() {
		var badgeType string
		var n int
		if err := rows.Scan(&badgeType, &n); err != nil {
			return nil, 0, fmt.Errorf("scan badge count: %w", err)
		}
		counts[badgeType] = n
		total += n
	}
	return counts, total, rows.Err()
}
