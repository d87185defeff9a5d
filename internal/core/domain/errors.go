package domain

import "errors"

// --- ERREURS DU DOMAINE ---
// Taxonomie unique : les adapters (repo, broker) traduisent leurs erreurs
// techniques vers ces sentinelles AVANT de remonter au service.
var (
	// Authentification / autorisation
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not allowed")

	// Requêtes invalides (rejetées, jamais retentées)
	ErrSelfTarget    = errors.New("cannot target yourself")
	ErrInvalidTarget = errors.New("invalid target reference")
	ErrInvalidInput  = errors.New("invalid input")
	ErrBatchTooLarge = errors.New("too many ids requested")

	// Lectures
	ErrNotFound = errors.New("resource not found")

	// Interne uniquement : violation d'unicité lors d'un create d'edge.
	// Le service de relations la réconcilie, elle ne sort JAMAIS vers l'appelant.
	ErrEdgeAlreadyExists = errors.New("relation already exists")

	// Infrastructure transitoire (l'appelant peut retenter l'opération entière)
	ErrStoreUnavailable = errors.New("store unavailable")
)
