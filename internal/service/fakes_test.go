package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"foodscroll-go/internal/api/dto"
	infraKafka "foodscroll-go/internal/infra/kafka"
	"foodscroll-go/internal/model"
	"foodscroll-go/internal/repository"

	"gorm.io/gorm"
)

var (
	errStoreDown = errors.New("connection refused")
	zeroTime     time.Time
)

type relKey struct {
	userID  int64
	videoID int64
}

// memStore 内存版存储，行为与 repository 包的事务语义一致
type memStore struct {
	mu sync.Mutex

	seq      int64
	base     time.Time
	videos   map[int64]*model.Video
	partners map[int64]*model.Partner
	users    map[int64]*model.User
	likes    map[relKey]int64
	saves    map[relKey]int64
	comments map[int64]*model.Comment

	calls map[string]int

	failToggle   error
	conflictOnce bool
	failGetByIDs error
}

func newMemStore() *memStore {
	return &memStore{
		base:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		videos:   make(map[int64]*model.Video),
		partners: make(map[int64]*model.Partner),
		users:    make(map[int64]*model.User),
		likes:    make(map[relKey]int64),
		saves:    make(map[relKey]int64),
		comments: make(map[int64]*model.Comment),
		calls:    make(map[string]int),
	}
}

func (m *memStore) next() int64 {
	m.seq++
	return m.seq
}

func (m *memStore) tick() time.Time {
	return m.base.Add(time.Duration(m.next()) * time.Second)
}

func (m *memStore) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *memStore) relations(kind model.RelationKind) map[relKey]int64 {
	if kind == model.RelationSave {
		return m.saves
	}
	return m.likes
}

func (m *memStore) addPartner(name, shop string) *model.Partner {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &model.Partner{
		ID:          m.next(),
		Name:        name,
		Email:       strings.ToLower(name) + "@example.com",
		Password:    "hash",
		ShopName:    shop,
		ShopAddress: "1 Market St",
		CreatedAt:   m.base,
	}
	m.partners[p.ID] = p
	return p
}

func (m *memStore) addUser(name string) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &model.User{ID: m.next(), Name: name, Email: strings.ToLower(name) + "@example.com"}
	m.users[u.ID] = u
	return u
}

// addVideo createdAt 为零值时按写入顺序递增
func (m *memStore) addVideo(partnerID int64, title string, createdAt time.Time) *model.Video {
	m.mu.Lock()
	defer m.mu.Unlock()
	if createdAt.IsZero() {
		createdAt = m.tick()
	}
	v := &model.Video{
		ID:           m.next(),
		PartnerID:    partnerID,
		Title:        title,
		Description:  title + " description",
		VideoURL:     "https://cdn.example.com/" + title + ".mp4",
		ThumbnailURL: "https://cdn.example.com/" + title + ".jpg",
		CreatedAt:    createdAt,
	}
	m.videos[v.ID] = v
	return v
}

func (m *memStore) video(id int64) model.Video {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.videos[id]
}

func (m *memStore) setCounters(id, likes, saves, comments int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.videos[id]
	v.LikeCount, v.SavesCount, v.CommentsCount = likes, saves, comments
}

func sortFeed(videos []model.Video) {
	sort.Slice(videos, func(i, j int) bool {
		if !videos[i].CreatedAt.Equal(videos[j].CreatedAt) {
			return videos[i].CreatedAt.After(videos[j].CreatedAt)
		}
		return videos[i].ID > videos[j].ID
	})
}

func paginate[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

// ---- VideoStore ----

type fakeVideos struct{ *memStore }

func (f fakeVideos) GetByID(_ context.Context, id int64) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *v
	return &c, nil
}

func (f fakeVideos) GetByIDs(_ context.Context, ids []int64) ([]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["videos.GetByIDs"]++
	if f.failGetByIDs != nil {
		return nil, f.failGetByIDs
	}
	var out []model.Video
	for _, id := range ids {
		if v, ok := f.videos[id]; ok {
			out = append(out, *v)
		}
	}
	// 与数据库一样不保证顺序
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeVideos) Create(_ context.Context, video *model.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	video.ID = f.next()
	video.CreatedAt = f.tick()
	c := *video
	f.videos[video.ID] = &c
	return nil
}

func (f fakeVideos) all(match func(*model.Video) bool) []model.Video {
	var out []model.Video
	for _, v := range f.videos {
		if match(v) {
			out = append(out, *v)
		}
	}
	sortFeed(out)
	return out
}

func (f fakeVideos) ListFeed(_ context.Context, skip, limit int) ([]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["videos.ListFeed"]++
	return paginate(f.all(func(*model.Video) bool { return true }), skip, limit), nil
}

func (f fakeVideos) ListByPartner(_ context.Context, partnerID int64) ([]model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["videos.ListByPartner"]++
	return f.all(func(v *model.Video) bool { return v.PartnerID == partnerID }), nil
}

func (f fakeVideos) UpdateOrderLink(_ context.Context, videoID, partnerID int64, link string) (*model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[videoID]
	if !ok || v.PartnerID != partnerID {
		return nil, gorm.ErrRecordNotFound
	}
	v.ExternalOrderLink = link
	c := *v
	return &c, nil
}

func (f fakeVideos) Search(_ context.Context, keyword string, skip, limit int) ([]model.Video, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kw := strings.ToLower(keyword)
	matched := f.all(func(v *model.Video) bool {
		return strings.Contains(strings.ToLower(v.Title), kw) ||
			strings.Contains(strings.ToLower(v.Description), kw)
	})
	return paginate(matched, skip, limit), int64(len(matched)), nil
}

func (f fakeVideos) ListIDsAfter(_ context.Context, afterID int64, limit int) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int64
	for id := range f.videos {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return paginate(ids, 0, limit), nil
}

func (f fakeVideos) Recount(_ context.Context, videoID int64) (*model.Video, *model.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[videoID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	before := *v
	v.LikeCount, v.SavesCount, v.CommentsCount = 0, 0, 0
	for k := range f.likes {
		if k.videoID == videoID {
			v.LikeCount++
		}
	}
	for k := range f.saves {
		if k.videoID == videoID {
			v.SavesCount++
		}
	}
	for _, c := range f.comments {
		if c.VideoID == videoID {
			v.CommentsCount++
		}
	}
	after := *v
	return &before, &after, nil
}

// ---- PartnerStore ----

type fakePartners struct{ *memStore }

func (f fakePartners) GetByID(_ context.Context, id int64) (*model.Partner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["partners.GetByID"]++
	p, ok := f.partners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *p
	return &c, nil
}

func (f fakePartners) GetByIDs(_ context.Context, ids []int64) ([]model.Partner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["partners.GetByIDs"]++
	var out []model.Partner
	for _, id := range ids {
		if p, ok := f.partners[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f fakePartners) Update(_ context.Context, id int64, updates map[string]interface{}) (*model.Partner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.partners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "shop_name":
			p.ShopName = v.(string)
		case "shop_address":
			p.ShopAddress = v.(string)
		case "profile_pic":
			p.ProfilePic = v.(string)
		}
	}
	c := *p
	return &c, nil
}

// ---- UserStore ----

type fakeUsers struct{ *memStore }

func (f fakeUsers) GetByIDs(_ context.Context, ids []int64) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["users.GetByIDs"]++
	var out []model.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

// ---- EngagementStore ----

type fakeEngagement struct{ *memStore }

func (f fakeEngagement) Toggle(_ context.Context, kind model.RelationKind, userID, videoID int64) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failToggle != nil {
		return false, 0, f.failToggle
	}
	v, ok := f.videos[videoID]
	if !ok {
		return false, 0, gorm.ErrRecordNotFound
	}
	if f.conflictOnce {
		f.conflictOnce = false
		return false, 0, repository.ErrRelationConflict
	}

	rels := f.relations(kind)
	counter := &v.LikeCount
	if kind == model.RelationSave {
		counter = &v.SavesCount
	}

	key := relKey{userID: userID, videoID: videoID}
	if _, exists := rels[key]; exists {
		delete(rels, key)
		if *counter > 0 {
			*counter--
		}
		return false, *counter, nil
	}
	rels[key] = f.next()
	*counter++
	return true, *counter, nil
}

func (f fakeEngagement) Exists(_ context.Context, kind model.RelationKind, userID, videoID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.relations(kind)[relKey{userID: userID, videoID: videoID}]
	return ok, nil
}

func (f fakeEngagement) ActiveVideoIDs(_ context.Context, kind model.RelationKind, userID int64, videoIDs []int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["engagement.ActiveVideoIDs."+string(kind)]++
	var out []int64
	for _, id := range videoIDs {
		if _, ok := f.relations(kind)[relKey{userID: userID, videoID: id}]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f fakeEngagement) ListVideoIDsByUser(_ context.Context, kind model.RelationKind, userID int64, skip, limit int) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	type row struct{ videoID, seq int64 }
	var rows []row
	for k, seq := range f.relations(kind) {
		if k.userID == userID {
			rows = append(rows, row{k.videoID, seq})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.videoID)
	}
	return paginate(ids, skip, limit), nil
}

func (f fakeEngagement) CounterValue(_ context.Context, kind model.RelationKind, videoID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[videoID]
	if !ok {
		return 0, nil
	}
	if kind == model.RelationSave {
		return v.SavesCount, nil
	}
	return v.LikeCount, nil
}

// ---- CommentStore ----

type fakeComments struct{ *memStore }

func (f fakeComments) Create(_ context.Context, comment *model.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.videos[comment.VideoID]
	if !ok {
		return gorm.ErrForeignKeyViolated
	}
	comment.ID = f.next()
	comment.CreatedAt = f.tick()
	c := *comment
	f.comments[c.ID] = &c
	v.CommentsCount++
	return nil
}

func (f fakeComments) GetByID(_ context.Context, id int64) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f fakeComments) Delete(_ context.Context, commentID, userID int64) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.comments[commentID]
	if !ok || c.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	delete(f.comments, commentID)
	if v, ok := f.videos[c.VideoID]; ok && v.CommentsCount > 0 {
		v.CommentsCount--
	}
	return c, nil
}

func (f fakeComments) ListByVideo(_ context.Context, videoID int64) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Comment
	for _, c := range f.comments {
		if c.VideoID == videoID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// ---- infra fakes ----

type fakeDirty struct {
	mu  sync.Mutex
	ids map[int64]bool
	err error
}

func newFakeDirty() *fakeDirty {
	return &fakeDirty{ids: make(map[int64]bool)}
}

func (d *fakeDirty) MarkDirty(_ context.Context, videoID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.ids[videoID] = true
	return nil
}

func (d *fakeDirty) PopDirty(_ context.Context, n int) ([]int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []int64
	for id := range d.ids {
		if len(out) == n {
			break
		}
		out = append(out, id)
		delete(d.ids, id)
	}
	return out, nil
}

func (d *fakeDirty) Size(_ context.Context) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.ids)), nil
}

func (d *fakeDirty) has(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ids[id]
}

type fakePublisher struct {
	mu     sync.Mutex
	events []infraKafka.EngagementEvent
	err    error
}

func (p *fakePublisher) PublishEngagement(_ context.Context, event *infraKafka.EngagementEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, *event)
	return nil
}

type fakeCatalogCache struct {
	mu          sync.Mutex
	entries     map[int64]*dto.PartnerCatalog
	invalidated []int64
	getErr      error
}

func newFakeCatalogCache() *fakeCatalogCache {
	return &fakeCatalogCache{entries: make(map[int64]*dto.PartnerCatalog)}
}

func (c *fakeCatalogCache) Get(_ context.Context, partnerID int64) (*dto.PartnerCatalog, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.entries[partnerID]
	return v, ok, nil
}

func (c *fakeCatalogCache) Set(_ context.Context, partnerID int64, catalog *dto.PartnerCatalog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[partnerID] = catalog
	return nil
}

func (c *fakeCatalogCache) Invalidate(_ context.Context, partnerID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, partnerID)
	c.invalidated = append(c.invalidated, partnerID)
	return nil
}

type fakeAssets struct {
	missing map[string]bool
	err     error
	checked []string
}

func (a *fakeAssets) Exists(_ context.Context, rawURL string) (bool, error) {
	a.checked = append(a.checked, rawURL)
	if a.err != nil {
		return false, a.err
	}
	return !a.missing[rawURL], nil
}

type fakeIndex struct {
	mu      sync.Mutex
	indexed map[int64]model.Video
	hits    []int64
	total   int64
	err     error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: make(map[int64]model.Video)}
}

func (i *fakeIndex) IndexVideo(_ context.Context, video *model.Video) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.err != nil {
		return i.err
	}
	i.indexed[video.ID] = *video
	return nil
}

func (i *fakeIndex) SearchVideoIDs(_ context.Context, _ string, _, _ int) ([]int64, int64, error) {
	if i.err != nil {
		return nil, 0, i.err
	}
	return i.hits, i.total, nil
}
