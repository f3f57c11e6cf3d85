package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"tradefeed/internal/api"
	"tradefeed/internal/model"
)

// PostLister is the slice of the backend client the pager needs.
type PostLister interface {
	ListPosts(ctx context.Context, q api.ListPostsQuery) (api.ListPostsResponse, error)
}

// Pager holds paginated feed state. Every load is tagged with a generation
// number; a response is applied only if no newer load was issued in the
// meantime, so a stale page can never overwrite fresher state.
type Pager struct {
	client   PostLister
	logger   *zap.Logger
	pageSize int

	mu      sync.Mutex
	gen     uint64
	sortKey string
	viewer  string
	items   []model.Post
	offset  int
	total   int
}

// NewPager builds a pager with the given sort key and page size.
func NewPager(client PostLister, sortKey string, pageSize int, logger *zap.Logger) *Pager {
	if pageSize <= 0 {
		pageSize = 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pager{
		client:   client,
		logger:   logger,
		pageSize: pageSize,
		sortKey:  sortKey,
	}
}

// Load fetches one page. On reset it replaces the items and restarts the
// offset at zero; otherwise the page is appended. A failed load leaves the
// previous state intact.
func (p *Pager) Load(ctx context.Context, reset bool) error {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	offset := p.offset
	if reset {
		offset = 0
	}
	q := api.ListPostsQuery{
		Sort:   p.sortKey,
		Limit:  p.pageSize,
		Offset: offset,
		Viewer: p.viewer,
	}
	p.mu.Unlock()

	resp, err := p.client.ListPosts(ctx, q)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.gen {
		p.logger.Debug("drop stale feed page", zap.Uint64("gen", gen), zap.Uint64("latest", p.gen))
		return nil
	}
	if err != nil {
		return err
	}

	if reset {
		p.items = resp.Posts
		p.offset = len(resp.Posts)
	} else {
		p.items = append(p.items, resp.Posts...)
		p.offset += len(resp.Posts)
	}
	p.total = resp.Total
	return nil
}

// SetSort switches the sort key and reloads from the top.
func (p *Pager) SetSort(ctx context.Context, sortKey string) error {
	p.mu.Lock()
	p.sortKey = sortKey
	p.mu.Unlock()
	return p.Load(ctx, true)
}

// SetViewer switches the viewer identity and reloads from the top.
func (p *Pager) SetViewer(ctx context.Context, viewer string) error {
	p.mu.Lock()
	p.viewer = viewer
	p.mu.Unlock()
	return p.Load(ctx, true)
}

// Items returns a copy of the loaded posts.
func (p *Pager) Items() []model.Post {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Post, len(p.items))
	copy(out, p.items)
	return out
}

// Total returns the backend's total match count.
func (p *Pager) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// HasMore reports whether another page exists.
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items) < p.total
}

// Run re-issues a reset load on a fixed interval until the context is
// canceled. Refresh failures are logged and the previous state kept.
func (p *Pager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.Load(ctx, true); err != nil {
				p.logger.Warn("feed refresh failed", zap.Error(err))
			}
		}
	}
}
