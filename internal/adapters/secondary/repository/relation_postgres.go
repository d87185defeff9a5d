package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// edgeTable décrit où vit chaque variante d'edge. Trois tables, un seul
// contrat : contrainte UNIQUE sur (acteur, cible), la base est le backstop
// des courses entre toggles concurrents.
type edgeTable struct {
	name      string
	actorCol  string
	targetCol string
}

var edgeTables = map[domain.RelationKind]edgeTable{
	domain.KindFollow:      {name: "follows", actorCol: "follower_id", targetCol: "following_id"},
	domain.KindLikePost:    {name: "likes", actorCol: "user_id", targetCol: "post_id"},
	domain.KindLikeComment: {name: "likes", actorCol: "user_id", targetCol: "comment_id"},
	domain.KindSave:        {name: "collections", actorCol: "user_id", targetCol: "post_id"},
}

type RelationPostgresRepo struct {
	db *pgxpool.Pool
}

func NewRelationPostgresRepo(db *pgxpool.Pool) ports.RelationRepository {
	return &RelationPostgresRepo{db: db}
}

func (r *RelationPostgresRepo) table(kind domain.RelationKind) (edgeTable, error) {
	t, ok := edgeTables[kind]
	if !ok {
		return edgeTable{}, domain.ErrInvalidTarget
	}
	return t, nil
}

func (r *RelationPostgresRepo) Find(ctx context.Context, actorID, targetID string, kind domain.RelationKind) (*domain.RelationEdge, error) {
	t, err := r.table(kind)
	if err != nil {
		return nil, err
	}

	// Les noms de table/colonne viennent de edgeTables (statique), jamais de
	// l'input utilisateur : le Sprintf est sûr ici.
	q := fmt.Sprintf(`SELECT id, created_at FROM %s WHERE %s = $1 AND %s = $2`, t.name, t.actorCol, t.targetCol)

	edge := domain.RelationEdge{ActorID: actorID, TargetID: targetID, Kind: kind}
	err = r.db.QueryRow(ctx, q, actorID, targetID).Scan(&edge.ID, &edge.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, translateError(err)
	}
	return &edge, nil
}

func (r *RelationPostgresRepo) Create(ctx context.Context, edge *domain.RelationEdge) error {
	t, err := r.table(edge.Kind)
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`INSERT INTO %s (id, %s, %s, created_at) VALUES ($1, $2, $3, $4)`, t.name, t.actorCol, t.targetCol)

	_, err = r.db.Exec(ctx, q, edge.ID, edge.ActorID, edge.TargetID, edge.CreatedAt)
	if err != nil {
		return translateError(err)
	}
	return nil
}

// Delete : supprimer un row déjà parti n'est pas une erreur, l'état final
// (edge absent) est le même.
func (r *RelationPostgresRepo) Delete(ctx context.Context, edgeID string, kind domain.RelationKind) error {
	t, err := r.table(kind)
	if err != nil {
		return err
	}

	q := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.name)
	if _, err := r.db.Exec(ctx, q, edgeID); err != nil {
		return translateError(err)
	}
	return nil
}

// TargetsWithEdge : UNE requête pour tous les targets de la page.
// C'est ce qui permet au reader de tester les flags en O(1) par id.
func (r *RelationPostgresRepo) TargetsWithEdge(ctx context.Context, actorID string, targetIDs []string, kind domain.RelationKind) (map[string]struct{}, error) {
	t, err := r.table(kind)
	if err != nil {
		return nil, err
	}
	if len(targetIDs) == 0 {
		return map[string]struct{}{}, nil
	}

	q := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = ANY($2)`, t.targetCol, t.name, t.actorCol, t.targetCol)

	rows, err := r.db.Query(ctx, q, actorID, targetIDs)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	found := make(map[string]struct{}, len(targetIDs))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, translateError(err)
		}
		found[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return found, nil
}

// StreamFollowerIDs livre les followers par paquets pour le fan-out, sans
// jamais matérialiser la liste complète en mémoire.
func (r *RelationPostgresRepo) StreamFollowerIDs(ctx context.Context, userID string, batchSize int, yield func([]string) error) error {
	rows, err := r.db.Query(ctx, `SELECT follower_id FROM follows WHERE following_id = $1`, userID)
	if err != nil {
		return translateError(err)
	}
	defer rows.Close()

	batch := make([]string, 0, batchSize)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return translateError(err)
		}
		batch = append(batch, id)

		if len(batch) >= batchSize {
			if err := yield(batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return translateError(err)
	}

	if len(batch) > 0 {
		return yield(batch)
	}
	return nil
}
