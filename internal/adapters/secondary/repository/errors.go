package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
)

// Codes d'erreur PostgreSQL qu'on sait traduire
const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

// translateError convertit les erreurs du driver en erreurs du Domaine.
// Aucune erreur pgx brute ne doit sortir d'un repository : le service ne
// connaît que la taxonomie domain.Err*.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return domain.ErrEdgeAlreadyExists
		case pgFKViolation:
			// La cible référencée n'existe pas (post/user/comment supprimé)
			return domain.ErrInvalidTarget
		}
	}

	// Tout le reste est traité comme une panne transitoire du store :
	// l'appelant peut retenter l'opération entière.
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
