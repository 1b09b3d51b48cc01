package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blog-community-api/internal/auth"
	"github.com/blog-community-api/internal/config"
	"github.com/blog-community-api/internal/mocks"
	"github.com/blog-community-api/internal/models"
	"github.com/blog-community-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type testEnv struct {
	router      *gin.Engine
	userRepo    *mocks.MockUserRepository
	postRepo    *mocks.MockPostRepository
	commentRepo *mocks.MockCommentRepository
	likeRepo    *mocks.MockLikeRepository
	eventRepo   *mocks.MockEventRepository
	sessionRepo *mocks.MockSessionRepository
}

func newTestEnv() *testEnv {
	log := zerolog.Nop()
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret"}}

	userRepo := mocks.NewMockUserRepository()
	postRepo := mocks.NewMockPostRepository()
	commentRepo := mocks.NewMockCommentRepository()
	likeRepo := mocks.NewMockLikeRepository()
	eventRepo := mocks.NewMockEventRepository()
	sessionRepo := mocks.NewMockSessionRepository()

	services := &service.Services{
		Auth:    service.NewAuthService(userRepo, sessionRepo, cfg, log),
		Post:    service.NewPostService(postRepo, commentRepo, likeRepo, userRepo, log),
		Comment: service.NewCommentService(commentRepo, postRepo, userRepo, log),
		Event:   service.NewEventService(eventRepo, log),
		User:    service.NewUserService(userRepo, log),
	}

	return &testEnv{
		router:      NewRouter(services, cfg, log),
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		eventRepo:   eventRepo,
		sessionRepo: sessionRepo,
	}
}

// register creates an account through the API and returns its session cookie
func (e *testEnv) register(t *testing.T, email, displayName string) *http.Cookie {
	t.Helper()

	body := `{"email":"` + email + `","password":"s3cret-pass","displayName":"` + displayName + `"}`
	w := e.do(http.MethodPost, "/auth/register_with_password", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			return c
		}
	}
	t.Fatal("register did not set a session cookie")
	return nil
}

// promote flips the registered user's role to admin directly in the store
func (e *testEnv) promote(t *testing.T, email string) {
	t.Helper()
	for _, u := range e.userRepo.Users {
		if u.Email == email {
			u.Role = "admin"
			return
		}
	}
	t.Fatalf("no user with email %s", email)
}

func (e *testEnv) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status field = %v", resp["status"])
	}
}

func TestCommentRequiresAuthentication(t *testing.T) {
	env := newTestEnv()
	env.postRepo.Add(&models.Post{Title: "t", Slug: "t", Published: true})

	w := env.do(http.MethodPost, "/post/comment", `{"postId":1,"content":"hi"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCommentRoundTrip(t *testing.T) {
	env := newTestEnv()

	env.userRepo.Add(&models.User{ID: 5, Email: "alice@example.com", DisplayName: "Alice", Role: "user"})
	post := env.postRepo.Add(&models.Post{Title: "Welcome", Slug: "welcome", Published: true})

	cookie := env.register(t, "bob@example.com", "Bob")

	w := env.do(http.MethodPost, "/post/comment", `{"postId":1,"content":"cc @Alice re: deadline"}`, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("comment status = %d, body %s", w.Code, w.Body.String())
	}

	var created models.CreatedComment
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if created.Content != "cc @Alice re: deadline" {
		t.Errorf("response content = %q, want the original text", created.Content)
	}
	if created.User.DisplayName != "Bob" {
		t.Errorf("comment author = %q, want Bob", created.User.DisplayName)
	}
	if got := env.commentRepo.LastCreated.Content; got != "cc @5 re: deadline" {
		t.Errorf("stored content = %q, want %q", got, "cc @5 re: deadline")
	}

	// the detail page serves the decoded form
	env.postRepo.DetailBySlug["welcome"] = &models.PostDetail{ID: post.ID, Title: "Welcome", Slug: "welcome"}
	env.commentRepo.PostComments[post.ID] = []*models.CommentDetail{
		{ID: created.ID, Content: env.commentRepo.LastCreated.Content},
	}

	w = env.do(http.MethodGet, "/post/by-slug/welcome", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail status = %d, body %s", w.Code, w.Body.String())
	}

	var detail models.PostDetail
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(detail.Comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(detail.Comments))
	}
	if detail.Comments[0].Content != "cc [@Alice](/user/5) re: deadline" {
		t.Errorf("decoded content = %q, want %q", detail.Comments[0].Content, "cc [@Alice](/user/5) re: deadline")
	}
}

func TestCommentValidationError(t *testing.T) {
	env := newTestEnv()
	env.postRepo.Add(&models.Post{Title: "t", Slug: "t", Published: true})
	cookie := env.register(t, "bob@example.com", "Bob")

	long := strings.Repeat("a", models.MaxCommentLength+1)
	w := env.do(http.MethodPost, "/post/comment", `{"postId":1,"content":"`+long+`"}`, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}
}

func TestPostDetailNotFound(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/post/by-slug/missing", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCreatePostForbiddenForRegularUser(t *testing.T) {
	env := newTestEnv()
	cookie := env.register(t, "bob@example.com", "Bob")

	w := env.do(http.MethodPost, "/post/create", `{"title":"New","slug":"new-post","content":"body","published":true}`, cookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body %s", w.Code, w.Body.String())
	}
}

func TestCreatePostAsAdmin(t *testing.T) {
	env := newTestEnv()
	cookie := env.register(t, "admin@example.com", "Admin")
	env.promote(t, "admin@example.com")

	w := env.do(http.MethodPost, "/post/create", `{"title":"New","slug":"new-post","content":"body","published":true}`, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}

	// duplicate slug conflicts
	w = env.do(http.MethodPost, "/post/create", `{"title":"Other","slug":"new-post","content":"body","published":true}`, cookie)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate slug status = %d, want 409, body %s", w.Code, w.Body.String())
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	env := newTestEnv()
	env.register(t, "bob@example.com", "Bob")

	w := env.do(http.MethodPost, "/auth/register_with_password",
		`{"email":"bob@example.com","password":"s3cret-pass","displayName":"Bobby"}`, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body %s", w.Code, w.Body.String())
	}
}

func TestLoginAndSessionFlow(t *testing.T) {
	env := newTestEnv()
	env.register(t, "bob@example.com", "Bob")

	w := env.do(http.MethodPost, "/auth/login_with_password", `{"email":"bob@example.com","password":"s3cret-pass"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login did not set a session cookie")
	}

	w = env.do(http.MethodGet, "/auth/session", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("session status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.User.Email != "bob@example.com" {
		t.Errorf("session user email = %q", resp.User.Email)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	env := newTestEnv()
	cookie := env.register(t, "bob@example.com", "Bob")

	w := env.do(http.MethodPost, "/auth/logout", "", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d, body %s", w.Code, w.Body.String())
	}
	if len(env.sessionRepo.Sessions) != 0 {
		t.Errorf("sessions remaining = %d, want 0", len(env.sessionRepo.Sessions))
	}

	// the response expires the cookie
	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			cleared = c
		}
	}
	if cleared == nil {
		t.Fatal("logout did not set the session cookie")
	}
	if cleared.Value != "" || cleared.MaxAge >= 0 {
		t.Errorf("cookie not expired: value=%q maxAge=%d", cleared.Value, cleared.MaxAge)
	}

	// the old cookie no longer works
	w = env.do(http.MethodGet, "/auth/session", "", cookie)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("session after logout status = %d, want 401", w.Code)
	}
}

func TestLogoutWithoutCookie(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodPost, "/auth/logout", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestSessionWithoutCookie(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/auth/session", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestToggleLikeEndpoint(t *testing.T) {
	env := newTestEnv()
	env.postRepo.Add(&models.Post{Title: "t", Slug: "t", Published: true})
	cookie := env.register(t, "bob@example.com", "Bob")

	w := env.do(http.MethodPost, "/post/like", `{"postId":1}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp["liked"] {
		t.Error("first like should report liked=true")
	}

	w = env.do(http.MethodPost, "/post/like", `{"postId":1}`, cookie)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp["liked"] {
		t.Error("second like should report liked=false")
	}
}

func TestUserCommentsRequiresTargetOrAuth(t *testing.T) {
	env := newTestEnv()

	// anonymous without userId
	w := env.do(http.MethodGet, "/user/comments", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	// anonymous with explicit userId is public
	env.commentRepo.UserComments[7] = []*models.UserComment{
		{ID: 1, Content: "hi", PostTitle: "Welcome", PostSlug: "welcome"},
	}
	w = env.do(http.MethodGet, "/user/comments?userId=7", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	var comments []models.UserComment
	if err := json.Unmarshal(w.Body.Bytes(), &comments); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("got %d comments, want 1", len(comments))
	}
}

func TestEventAdminOnly(t *testing.T) {
	env := newTestEnv()
	cookie := env.register(t, "bob@example.com", "Bob")

	w := env.do(http.MethodPost, "/event/create",
		`{"title":"Meetup","description":"monthly","eventDate":"2030-01-15T18:00:00Z"}`, cookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body %s", w.Code, w.Body.String())
	}

	env.promote(t, "bob@example.com")
	w = env.do(http.MethodPost, "/event/create",
		`{"title":"Meetup","description":"monthly","eventDate":"2030-01-15T18:00:00Z"}`, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
}

func TestUpdateEventEndpoint(t *testing.T) {
	env := newTestEnv()
	cookie := env.register(t, "admin@example.com", "Admin")
	env.promote(t, "admin@example.com")

	w := env.do(http.MethodPost, "/event/create",
		`{"title":"Meetup","description":"monthly","eventDate":"2030-01-15T18:00:00Z"}`, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	w = env.do(http.MethodPut, "/event/update",
		`{"id":1,"title":"Meetup v2","description":"rescheduled","eventDate":"2030-02-15T18:00:00Z"}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}

	var updated models.Event
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if updated.Title != "Meetup v2" {
		t.Errorf("title = %q, want %q", updated.Title, "Meetup v2")
	}
	if env.eventRepo.Events[1].Title != "Meetup v2" {
		t.Errorf("stored title = %q, want %q", env.eventRepo.Events[1].Title, "Meetup v2")
	}

	// unknown id
	w = env.do(http.MethodPut, "/event/update",
		`{"id":99,"title":"Ghost","description":"none","eventDate":"2030-02-15T18:00:00Z"}`, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("update unknown id status = %d, want 404, body %s", w.Code, w.Body.String())
	}
}

func TestNextEventMayBeNull(t *testing.T) {
	env := newTestEnv()

	w := env.do(http.MethodGet, "/event/next", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "null" {
		t.Errorf("body = %q, want null", w.Body.String())
	}
}
