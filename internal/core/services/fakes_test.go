package services

import (
	"context"
	"sync"
	"time"

	"github.com/Neobase1412/meow-circle/internal/core/domain"
	"github.com/Neobase1412/meow-circle/internal/core/ports"
)

// memRelationRepo : store d'edges en mémoire, avec le même contrat que le
// repo Postgres (unicité par tuple, ErrNotFound, ErrEdgeAlreadyExists).
type memRelationRepo struct {
	mu    sync.Mutex
	edges map[string]*domain.RelationEdge // clef: actor|target|kind

	findCalls   int
	createCalls int

	// createErr force l'erreur du prochain Create (simule la course perdue)
	createErr error
}

func newMemRelationRepo() *memRelationRepo {
	return &memRelationRepo{edges: make(map[string]*domain.RelationEdge)}
}

func tupleKey(actorID, targetID string, kind domain.RelationKind) string {
	return actorID + "|" + targetID + "|" + string(kind)
}

func (r *memRelationRepo) Find(ctx context.Context, actorID, targetID string, kind domain.RelationKind) (*domain.RelationEdge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	edge, ok := r.edges[tupleKey(actorID, targetID, kind)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return edge, nil
}

func (r *memRelationRepo) Create(ctx context.Context, edge *domain.RelationEdge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	key := tupleKey(edge.ActorID, edge.TargetID, edge.Kind)
	if _, ok := r.edges[key]; ok {
		return domain.ErrEdgeAlreadyExists
	}
	r.edges[key] = edge
	return nil
}

func (r *memRelationRepo) Delete(ctx context.Context, edgeID string, kind domain.RelationKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, edge := range r.edges {
		if edge.ID == edgeID && edge.Kind == kind {
			delete(r.edges, key)
			return nil
		}
	}
	return nil // row absent = no-op
}

func (r *memRelationRepo) TargetsWithEdge(ctx context.Context, actorID string, targetIDs []string, kind domain.RelationKind) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]struct{})
	for _, target := range targetIDs {
		if _, ok := r.edges[tupleKey(actorID, target, kind)]; ok {
			out[target] = struct{}{}
		}
	}
	return out, nil
}

func (r *memRelationRepo) StreamFollowerIDs(ctx context.Context, userID string, batchSize int, yield func([]string) error) error {
	r.mu.Lock()
	var followers []string
	for _, edge := range r.edges {
		if edge.Kind == domain.KindFollow && edge.TargetID == userID {
			followers = append(followers, edge.ActorID)
		}
	}
	r.mu.Unlock()

	for start := 0; start < len(followers); start += batchSize {
		end := start + batchSize
		if end > len(followers) {
			end = len(followers)
		}
		if err := yield(followers[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *memRelationRepo) countEdges(targetID string, kind domain.RelationKind) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, edge := range r.edges {
		if edge.TargetID == targetID && edge.Kind == kind {
			n++
		}
	}
	return n
}

// fakePublisher enregistre les événements émis.
type fakePublisher struct {
	mu       sync.Mutex
	relation []domain.RelationChangedEvent
	posts    []*domain.Post
	comments []*domain.Comment

	err error
}

func (p *fakePublisher) PublishRelationChanged(ctx context.Context, event domain.RelationChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.relation = append(p.relation, event)
	return nil
}

func (p *fakePublisher) PublishPostCreated(ctx context.Context, post *domain.Post) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.posts = append(p.posts, post)
	return nil
}

func (p *fakePublisher) PublishPostCommented(ctx context.Context, comment *domain.Comment, postAuthorID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.comments = append(p.comments, comment)
	return nil
}

// fakePostRepo : un PostRepository minimal sur map. Les compteurs de likes
// sont délégués au memRelationRepo pour tester compteurs et toggles ensemble.
type fakePostRepo struct {
	mu       sync.Mutex
	posts    map[string]*domain.Post
	comments map[string][]*domain.Comment

	relations *memRelationRepo
}

func newFakePostRepo(relations *memRelationRepo) *fakePostRepo {
	return &fakePostRepo{
		posts:     make(map[string]*domain.Post),
		comments:  make(map[string][]*domain.Comment),
		relations: relations,
	}
}

func (r *fakePostRepo) Save(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = post
	return nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return post, nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) FindManyWithCounts(ctx context.Context, ids []string) ([]ports.PostWithCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []ports.PostWithCounts
	for _, id := range ids {
		post, ok := r.posts[id]
		if !ok {
			continue
		}
		row := ports.PostWithCounts{Post: *post}
		if r.relations != nil {
			row.Counts.Likes = r.relations.countEdges(id, domain.KindLikePost)
		}
		row.Counts.Comments = int64(len(r.comments[id]))
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *fakePostRepo) ListPublic(ctx context.Context, limit int, before time.Time) ([]ports.EntityRef, error) {
	return r.list(limit, before, func(p *domain.Post) bool { return p.Visibility == domain.VisibilityPublic })
}

func (r *fakePostRepo) ListByAuthor(ctx context.Context, authorID string, limit int, before time.Time) ([]ports.EntityRef, error) {
	return r.list(limit, before, func(p *domain.Post) bool { return p.AuthorID == authorID })
}

func (r *fakePostRepo) list(limit int, before time.Time, keep func(*domain.Post) bool) ([]ports.EntityRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var refs []ports.EntityRef
	for _, post := range r.posts {
		if !keep(post) {
			continue
		}
		if !before.IsZero() && !post.CreatedAt.Before(before) {
			continue
		}
		refs = append(refs, ports.EntityRef{ID: post.ID, CreatedAt: post.CreatedAt})
	}
	// Tri décroissant par date, comme le ORDER BY du vrai repo
	for i := 0; i < len(refs); i++ {
		for j := i + 1; j < len(refs); j++ {
			if refs[j].CreatedAt.After(refs[i].CreatedAt) {
				refs[i], refs[j] = refs[j], refs[i]
			}
		}
	}
	if len(refs) > limit {
		refs = refs[:limit]
	}
	return refs, nil
}

func (r *fakePostRepo) SaveComment(ctx context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments[comment.PostID] = append(r.comments[comment.PostID], comment)
	return nil
}

func (r *fakePostRepo) ListComments(ctx context.Context, postID string, limit int) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	comments := r.comments[postID]
	if len(comments) > limit {
		comments = comments[:limit]
	}
	return comments, nil
}

// fakeUserRepo ne sert qu'au reader : FindManyWithCounts et rien d'autre.
type fakeUserRepo struct {
	rows map[string]ports.UserWithCounts
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &row.User, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.rows[user.ID] = ports.UserWithCounts{User: *user}
	return nil
}

func (r *fakeUserRepo) FindManyWithCounts(ctx context.Context, ids []string) ([]ports.UserWithCounts, error) {
	var out []ports.UserWithCounts
	for _, id := range ids {
		if row, ok := r.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// fakeTimelineRepo enregistre les appels de fan-out.
type fakeTimelineRepo struct {
	mu      sync.Mutex
	batches [][]string
	items   map[string][]*domain.FeedItem // par user

	addErr error
}

func newFakeTimelineRepo() *fakeTimelineRepo {
	return &fakeTimelineRepo{items: make(map[string][]*domain.FeedItem)}
}

func (r *fakeTimelineRepo) AddToTimelines(ctx context.Context, userIDs []string, item *domain.FeedItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return r.addErr
	}
	batch := make([]string, len(userIDs))
	copy(batch, userIDs)
	r.batches = append(r.batches, batch)
	for _, id := range userIDs {
		r.items[id] = append(r.items[id], item)
	}
	return nil
}

func (r *fakeTimelineRepo) GetTimeline(ctx context.Context, req domain.FeedRequest) ([]*domain.FeedItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.items[req.UserID]
	if req.Offset >= int64(len(items)) {
		return nil, nil
	}
	items = items[req.Offset:]
	if int64(len(items)) > req.Limit {
		items = items[:req.Limit]
	}
	return items, nil
}

// fakeNotificationRepo : collecte en mémoire.
type fakeNotificationRepo struct {
	mu    sync.Mutex
	saved []*domain.Notification
}

func (r *fakeNotificationRepo) Save(ctx context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, n)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID string, limit int, before time.Time) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notification
	for _, n := range r.saved {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.saved {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.saved {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}
