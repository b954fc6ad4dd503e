package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"agency-site-be/internal/entity"
	"agency-site-be/internal/repository/contract"
	"agency-site-be/internal/repository/specification"
	"agency-site-be/internal/repository/unitofwork"
	"agency-site-be/pkg/events"

	"github.com/google/uuid"
)

// memStore backs the fake unit of work. Specifications are interpreted by type
// so services can be tested without a database.
type memStore struct {
	mu      sync.Mutex
	posts   map[uuid.UUID]*entity.Post
	jobs    map[uuid.UUID]*entity.Job
	leads   []*entity.Lead
	globals map[string]*entity.Global
	media   map[uuid.UUID]*entity.Media
	admins  map[uuid.UUID]*entity.AdminUser

	commits   int
	rollbacks int
	writeErr  error
}

func newMemStore() *memStore {
	return &memStore{
		posts:   map[uuid.UUID]*entity.Post{},
		jobs:    map[uuid.UUID]*entity.Job{},
		globals: map[string]*entity.Global{},
		media:   map[uuid.UUID]*entity.Media{},
		admins:  map[uuid.UUID]*entity.AdminUser{},
	}
}

func (m *memStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memUoW{store: m}
}

type memUoW struct {
	store *memStore
	open  bool
}

func (u *memUoW) Begin(ctx context.Context) error {
	u.open = true
	return nil
}

func (u *memUoW) Commit() error {
	if !u.open {
		return errors.New("no transaction to commit")
	}
	u.open = false
	u.store.mu.Lock()
	u.store.commits++
	u.store.mu.Unlock()
	return nil
}

func (u *memUoW) Rollback() error {
	if !u.open {
		return errors.New("no transaction to rollback")
	}
	u.open = false
	u.store.mu.Lock()
	u.store.rollbacks++
	u.store.mu.Unlock()
	return nil
}

func (u *memUoW) PostRepository() contract.PostRepository           { return &memPosts{u.store} }
func (u *memUoW) JobRepository() contract.JobRepository             { return &memJobs{u.store} }
func (u *memUoW) LeadRepository() contract.LeadRepository           { return &memLeads{u.store} }
func (u *memUoW) GlobalRepository() contract.GlobalRepository       { return &memGlobals{u.store} }
func (u *memUoW) MediaRepository() contract.MediaRepository         { return &memMedia{u.store} }
func (u *memUoW) AdminUserRepository() contract.AdminUserRepository { return &memAdmins{u.store} }

// query is the subset of specifications the fakes understand.
type query struct {
	ids         []uuid.UUID
	slug        string
	email       string
	tag         string
	search      string
	visibleAt   *time.Time
	withDeleted bool
	page        *specification.Pagination
	order       []specification.OrderBy
}

func parseSpecs(specs []specification.Specification) query {
	var q query
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			q.ids = append(q.ids, v.ID)
		case specification.ByIDs:
			q.ids = append(q.ids, v.IDs...)
		case specification.BySlug:
			q.slug = v.Slug
		case specification.ByEmail:
			q.email = v.Email
		case specification.ByTag:
			q.tag = v.Tag
		case specification.LeadSearch:
			q.search = strings.ToLower(v.Term)
		case specification.Visible:
			now := v.Now
			q.visibleAt = &now
		case specification.WithDeleted:
			q.withDeleted = true
		case specification.Pagination:
			p := v
			q.page = &p
		case specification.OrderBy:
			q.order = append(q.order, v)
		}
	}
	return q
}

func paginate[T any](items []T, p *specification.Pagination) []T {
	if p == nil {
		return items
	}
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

type memPosts struct{ s *memStore }

func (r *memPosts) match(p *entity.Post, q query) bool {
	switch {
	case p.IsDeleted && !q.withDeleted:
		return false
	case len(q.ids) > 0 && !slices.Contains(q.ids, p.Id):
		return false
	case q.slug != "" && p.Slug != q.slug:
		return false
	case q.tag != "" && !slices.Contains(p.Tags, q.tag):
		return false
	case q.visibleAt != nil && !p.IsVisible(*q.visibleAt):
		return false
	}
	return true
}

func (r *memPosts) list(specs []specification.Specification) []*entity.Post {
	q := parseSpecs(specs)
	var out []*entity.Post
	for _, p := range r.s.posts {
		if r.match(p, q) {
			cp := *p
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *entity.Post) int {
		return publishedOrCreated(b.PublishedAt, b.CreatedAt).Compare(publishedOrCreated(a.PublishedAt, a.CreatedAt))
	})
	return paginate(out, q.page)
}

func publishedOrCreated(published *time.Time, created time.Time) time.Time {
	if published != nil {
		return *published
	}
	return created
}

func (r *memPosts) Create(ctx context.Context, post *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.writeErr != nil {
		return r.s.writeErr
	}
	for _, p := range r.s.posts {
		if p.Slug == post.Slug {
			return contract.ErrDuplicateKey
		}
	}
	cp := *post
	r.s.posts[post.Id] = &cp
	return nil
}

func (r *memPosts) Update(ctx context.Context, post *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.writeErr != nil {
		return r.s.writeErr
	}
	cp := *post
	r.s.posts[post.Id] = &cp
	return nil
}

func (r *memPosts) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.posts[id]; ok {
		now := time.Now()
		p.IsDeleted = true
		p.DeletedAt = &now
	}
	return nil
}

func (r *memPosts) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if found := r.list(specs); len(found) > 0 {
		return found[0], nil
	}
	return nil, nil
}

func (r *memPosts) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(specs), nil
}

func (r *memPosts) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.list(specs))), nil
}

type memJobs struct{ s *memStore }

func (r *memJobs) list(specs []specification.Specification) []*entity.Job {
	q := parseSpecs(specs)
	var out []*entity.Job
	for _, j := range r.s.jobs {
		switch {
		case j.IsDeleted && !q.withDeleted:
			continue
		case q.slug != "" && j.Slug != q.slug:
			continue
		case q.visibleAt != nil && !j.IsVisible(*q.visibleAt):
			continue
		}
		cp := *j
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *entity.Job) int {
		return publishedOrCreated(b.PublishedAt, b.CreatedAt).Compare(publishedOrCreated(a.PublishedAt, a.CreatedAt))
	})
	return paginate(out, q.page)
}

func (r *memJobs) Create(ctx context.Context, job *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, j := range r.s.jobs {
		if j.Slug == job.Slug {
			return contract.ErrDuplicateKey
		}
	}
	cp := *job
	r.s.jobs[job.Id] = &cp
	return nil
}

func (r *memJobs) Update(ctx context.Context, job *entity.Job) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *job
	r.s.jobs[job.Id] = &cp
	return nil
}

func (r *memJobs) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if j, ok := r.s.jobs[id]; ok {
		j.IsDeleted = true
	}
	return nil
}

func (r *memJobs) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if found := r.list(specs); len(found) > 0 {
		return found[0], nil
	}
	return nil, nil
}

func (r *memJobs) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(specs), nil
}

func (r *memJobs) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.list(specs))), nil
}

type memLeads struct{ s *memStore }

func (r *memLeads) list(specs []specification.Specification) []*entity.Lead {
	q := parseSpecs(specs)
	var out []*entity.Lead
	for _, l := range r.s.leads {
		if q.search != "" {
			hay := strings.ToLower(l.Name + " " + l.Email + " " + l.Company)
			if !strings.Contains(hay, q.search) {
				continue
			}
		}
		cp := *l
		out = append(out, &cp)
	}
	for _, o := range q.order {
		if o.Field == "name" {
			slices.SortStableFunc(out, func(a, b *entity.Lead) int {
				if o.Desc {
					return strings.Compare(b.Name, a.Name)
				}
				return strings.Compare(a.Name, b.Name)
			})
		}
	}
	return paginate(out, q.page)
}

func (r *memLeads) Create(ctx context.Context, lead *entity.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.writeErr != nil {
		return r.s.writeErr
	}
	cp := *lead
	r.s.leads = append(r.s.leads, &cp)
	return nil
}

func (r *memLeads) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Lead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if found := r.list(specs); len(found) > 0 {
		return found[0], nil
	}
	return nil, nil
}

func (r *memLeads) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Lead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(specs), nil
}

func (r *memLeads) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.list(specs))), nil
}

type memGlobals struct{ s *memStore }

func (r *memGlobals) FindByKey(ctx context.Context, key string) (*entity.Global, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if g, ok := r.s.globals[key]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (r *memGlobals) FindAll(ctx context.Context) ([]*entity.Global, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Global, 0, len(r.s.globals))
	for _, g := range r.s.globals {
		cp := *g
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memGlobals) Save(ctx context.Context, global *entity.Global) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *global
	r.s.globals[global.Key] = &cp
	return nil
}

type memMedia struct{ s *memStore }

func (r *memMedia) Create(ctx context.Context, media *entity.Media) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *media
	r.s.media[media.Id] = &cp
	return nil
}

func (r *memMedia) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Media, error) {
	all, _ := r.FindAll(ctx, specs...)
	if len(all) > 0 {
		return all[0], nil
	}
	return nil, nil
}

func (r *memMedia) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Media, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := parseSpecs(specs)
	var out []*entity.Media
	for _, m := range r.s.media {
		if len(q.ids) > 0 && !slices.Contains(q.ids, m.Id) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

type memAdmins struct{ s *memStore }

func (r *memAdmins) Create(ctx context.Context, user *entity.AdminUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *user
	r.s.admins[user.Id] = &cp
	return nil
}

func (r *memAdmins) Update(ctx context.Context, user *entity.AdminUser) error {
	return r.Create(ctx, user)
}

func (r *memAdmins) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AdminUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := parseSpecs(specs)
	for _, u := range r.s.admins {
		if q.email == "" || strings.EqualFold(u.Email, q.email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// recordingPublisher captures domain events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// recordingWarmups captures warmup payloads.
type recordingWarmups struct {
	mu       sync.Mutex
	payloads []string
}

func (p *recordingWarmups) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, string(payload))
	return nil
}

// countingCache is an in-process RenderCache that counts hits.
type countingCache struct {
	mu   sync.Mutex
	docs map[string]*entity.RenderedDocument
	hits int
	sets int
}

func newCountingCache() *countingCache {
	return &countingCache{docs: map[string]*entity.RenderedDocument{}}
}

func (c *countingCache) Get(ctx context.Context, key string) (*entity.RenderedDocument, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, ok := c.docs[key]
	if ok {
		c.hits++
	}
	return doc, ok
}

func (c *countingCache) Set(ctx context.Context, key string, doc *entity.RenderedDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.docs[key] = doc
}

// staticURLs maps media to a fixed CDN path.
type staticURLs struct{}

func (staticURLs) URL(m *entity.Media) (string, error) {
	return "https://cdn.test/" + m.Filename, nil
}
