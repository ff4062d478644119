package store

import (
	"context"
)

// embeddingStore keeps the searchable representation of issue titles. The
// embedding itself is computed inside Postgres via the azure_openai
// extension, so no vector ever crosses the wire.
type embeddingStore struct {
	db querier
}

func (s *embeddingStore) EmbedIssueTitle(ctx context.Context, issueID int64, title string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO issue_embeddings (issue_id, issue_embedding)
		VALUES ($1, azure_openai.create_embeddings('text-embedding-3-small', $2))
		ON CONFLICT (issue_id)
		DO UPDATE SET issue_embedding = EXCLUDED.issue_embedding`,
		issueID, title,
	)
	return err
}

// SimilarResolvedFixers walks the project's resolved and closed issues by
// embedding distance to the given issue. Every matching past issue yields a
// row, so the same fixer can appear more than once; the rows stay in
// similarity order and the caller decides how to collapse them.
func (s *embeddingStore) SimilarResolvedFixers(ctx context.Context, projectID, issueID int64) ([]int64, error) {
	rows, err := s.db.Query(ctx, `
		SELECT i.fixer_id
		FROM issue_embeddings e
		JOIN issues i ON i.id = e.issue_id
		WHERE i.project_id = $1
		  AND i.fixer_id IS NOT NULL
		  AND i.status IN ('RESOLVED', 'CLOSED')
		ORDER BY e.issue_embedding <=> (
			SELECT e2.issue_embedding FROM issue_embeddings e2 WHERE e2.issue_id = $2
		)`,
		projectID, issueID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fixerIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		fixerIDs = append(fixerIDs, id)
	}
	return fixerIDs, rows.Err()
}
