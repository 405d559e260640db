package storage

import (
	"errors"
	"fmt"
	"time"
)

// PointsEntry is one award in a player's points ledger.
type PointsEntry struct {
	ID        int64
	Player    string
	Points    int
	Source    string // Game that awarded the points
	SessionID string
	CreatedAt time.Time
}

// PlayerPoints is a player's cumulative total.
type PlayerPoints struct {
	Player string
	Points int
}

// AddPoints credits points to a player. Awards are append-only; negative
// amounts are rejected.
func (s *Store) AddPoints(player string, points int, source, sessionID string) (int64, error) {
	if player == "" {
		return 0, errors.New("storage: cannot add points: empty player")
	}
	if points < 0 {
		return 0, fmt.Errorf("storage: cannot add points: negative amount %d", points)
	}

	result, err := s.db.Exec(
		`INSERT INTO points_ledger (player, points, source, session_id) VALUES (?, ?, ?, ?)`,
		player, points, source, sessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot add points: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TotalPoints returns the player's cumulative points, 0 for unknown players.
func (s *Store) TotalPoints(player string) (int, error) {
	var total int
	err := s.db.QueryRow(
		"SELECT COALESCE(SUM(points), 0) FROM points_ledger WHERE player = ?",
		player,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query total points: %w", err)
	}
	return total, nil
}

// PointsHistory returns the player's most recent awards, newest first.
func (s *Store) PointsHistory(player string, limit int) ([]PointsEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, player, points, source, session_id, created_at
		 FROM points_ledger
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query points history: %w", err)
	}
	defer rows.Close()

	var entries []PointsEntry
	for rows.Next() {
		var e PointsEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Points, &e.Source, &e.SessionID, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// PointsLeaders returns every player's total, highest first.
func (s *Store) PointsLeaders(limit int) ([]PlayerPoints, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT player, SUM(points) AS total
		 FROM points_ledger
		 GROUP BY player
		 ORDER BY total DESC, player ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query points leaders: %w", err)
	}
	defer rows.Close()

	var leaders []PlayerPoints
	for rows.Next() {
		var p PlayerPoints
		if err := rows.Scan(&p.Player, &p.Points); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		leaders = append(leaders, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return leaders, nil
}
