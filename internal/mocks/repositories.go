package mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blog-community-api/internal/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users                  map[int64]*models.User
	NextID                 int64
	GetByIDsCalls          int
	GetByDisplayNamesCalls int
	Err                    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[int64]*models.User),
		NextID: 1,
	}
}

// Add stores a user with a fixed id for test setup
func (m *MockUserRepository) Add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = m.NextID
	}
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
	m.Users[user.ID] = user
	return user
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.Err != nil {
		return m.Err
	}
	user.ID = m.NextID
	m.NextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	u, err := m.GetByEmail(ctx, email)
	return u != nil, err
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.User, error) {
	m.GetByIDsCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	var users []*models.User
	for _, id := range ids {
		if u, ok := m.Users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *MockUserRepository) GetByDisplayNames(ctx context.Context, names []string) ([]*models.User, error) {
	m.GetByDisplayNamesCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var users []*models.User
	// iterate ids in order for deterministic tie-breaking, like ORDER BY id
	for id := int64(1); id < m.NextID; id++ {
		u, ok := m.Users[id]
		if !ok {
			continue
		}
		if wanted[strings.ToLower(u.DisplayName)] {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit int) ([]*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var users []*models.User
	for id := int64(1); id < m.NextID && len(users) < limit; id++ {
		u, ok := m.Users[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(u.DisplayName), strings.ToLower(query)) {
			users = append(users, u)
		}
	}
	return users, nil
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	Posts        map[int64]*models.Post
	NextID       int64
	DetailBySlug map[string]*models.PostDetail
	ListItems    []*models.PostListItem
	CreatedBy    map[int64][]*models.UserCreatedPost
	Err          error
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts:        make(map[int64]*models.Post),
		NextID:       1,
		DetailBySlug: make(map[string]*models.PostDetail),
		CreatedBy:    make(map[int64][]*models.UserCreatedPost),
	}
}

// Add stores a post with a fixed id for test setup
func (m *MockPostRepository) Add(post *models.Post) *models.Post {
	if post.ID == 0 {
		post.ID = m.NextID
	}
	if post.ID >= m.NextID {
		m.NextID = post.ID + 1
	}
	m.Posts[post.ID] = post
	return post
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	if m.Err != nil {
		return m.Err
	}
	post.ID = m.NextID
	m.NextID++
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	m.Posts[post.ID] = post
	return nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	existing, ok := m.Posts[post.ID]
	if !ok {
		return false, nil
	}
	existing.Title = post.Title
	existing.Slug = post.Slug
	existing.Content = post.Content
	existing.Published = post.Published
	existing.UpdatedAt = time.Now()
	return true, nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Posts[id]; !ok {
		return false, nil
	}
	delete(m.Posts, id)
	return true, nil
}

func (m *MockPostRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.Posts[id]
	return ok, nil
}

func (m *MockPostRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, p := range m.Posts {
		if p.Slug == slug && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPostRepository) List(ctx context.Context, includeUnpublished bool, viewerID int64) ([]*models.PostListItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var items []*models.PostListItem
	for _, item := range m.ListItems {
		if item.Published || includeUnpublished {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *MockPostRepository) GetDetailBySlug(ctx context.Context, slug string) (*models.PostDetail, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	detail, ok := m.DetailBySlug[slug]
	if !ok {
		return nil, nil
	}
	copied := *detail
	return &copied, nil
}

func (m *MockPostRepository) ListCreatedBy(ctx context.Context, userID int64) ([]*models.UserCreatedPost, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.CreatedBy[userID], nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments     map[int64]*models.Comment
	NextID       int64
	PostComments map[int64][]*models.CommentDetail
	UserComments map[int64][]*models.UserComment
	LastCreated  *models.Comment
	Err          error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{
		Comments:     make(map[int64]*models.Comment),
		NextID:       1,
		PostComments: make(map[int64][]*models.CommentDetail),
		UserComments: make(map[int64][]*models.UserComment),
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.Err != nil {
		return m.Err
	}
	comment.ID = m.NextID
	m.NextID++
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	m.Comments[comment.ID] = comment
	m.LastCreated = comment
	return nil
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.CommentDetail, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	// return copies: the post service rewrites bodies during decoding
	var comments []*models.CommentDetail
	for _, c := range m.PostComments[postID] {
		copied := *c
		comments = append(comments, &copied)
	}
	return comments, nil
}

func (m *MockCommentRepository) ListByUser(ctx context.Context, userID int64) ([]*models.UserComment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.UserComments[userID], nil
}

func (m *MockCommentRepository) Count(ctx context.Context, postID int64) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.PostComments[postID]), nil
}

// MockLikeRepository is a mock implementation of LikeRepository
type MockLikeRepository struct {
	Likes      map[string]bool
	LikedPosts map[int64][]*models.UserLikedPost
	Err        error
}

func NewMockLikeRepository() *MockLikeRepository {
	return &MockLikeRepository{
		Likes:      make(map[string]bool),
		LikedPosts: make(map[int64][]*models.UserLikedPost),
	}
}

func likeKey(postID, userID int64) string {
	return fmt.Sprintf("%d:%d", postID, userID)
}

func (m *MockLikeRepository) Exists(ctx context.Context, postID, userID int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	return m.Likes[likeKey(postID, userID)], nil
}

func (m *MockLikeRepository) Add(ctx context.Context, postID, userID int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Likes[likeKey(postID, userID)] = true
	return nil
}

func (m *MockLikeRepository) Remove(ctx context.Context, postID, userID int64) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Likes, likeKey(postID, userID))
	return nil
}

func (m *MockLikeRepository) ListLikedBy(ctx context.Context, userID int64) ([]*models.UserLikedPost, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.LikedPosts[userID], nil
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	Events    map[int64]*models.Event
	NextID    int64
	NextEvent *models.EventDetail
	EventList []*models.EventDetail
	Err       error
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		Events: make(map[int64]*models.Event),
		NextID: 1,
	}
}

func (m *MockEventRepository) Create(ctx context.Context, event *models.Event) error {
	if m.Err != nil {
		return m.Err
	}
	event.ID = m.NextID
	m.NextID++
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	m.Events[event.ID] = event
	return nil
}

func (m *MockEventRepository) Update(ctx context.Context, event *models.Event) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	existing, ok := m.Events[event.ID]
	if !ok {
		return false, nil
	}
	existing.Title = event.Title
	existing.Description = event.Description
	existing.EventDate = event.EventDate
	existing.UpdatedAt = time.Now()
	event.CreatedBy = existing.CreatedBy
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = existing.UpdatedAt
	return true, nil
}

func (m *MockEventRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Events[id]; !ok {
		return false, nil
	}
	delete(m.Events, id)
	return true, nil
}

func (m *MockEventRepository) Next(ctx context.Context, now time.Time) (*models.EventDetail, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.NextEvent, nil
}

func (m *MockEventRepository) List(ctx context.Context) ([]*models.EventDetail, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.EventList, nil
}

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	Sessions map[string]*models.Session
	Err      error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		Sessions: make(map[string]*models.Session),
	}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *models.Session) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sessions[session.ID] = session
	return nil
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Sessions[id], nil
}

func (m *MockSessionRepository) Touch(ctx context.Context, id string, lastAccessed time.Time) error {
	if m.Err != nil {
		return m.Err
	}
	if s, ok := m.Sessions[id]; ok {
		s.LastAccessed = lastAccessed
	}
	return nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.Sessions, id)
	return nil
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	var deleted int64
	for id, s := range m.Sessions {
		if s.Expired(now) {
			delete(m.Sessions, id)
			deleted++
		}
	}
	return deleted, nil
}
