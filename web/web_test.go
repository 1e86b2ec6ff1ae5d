package web

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"yatube/config"
	"yatube/db"
	"yatube/models"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:web_%s?mode=memory&cache=shared", t.Name())
	instance, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("cannot open test database: %v", err)
	}
	db.Instance = instance
	models.Init()
	config.POSTS_PER_PAGE = 10
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	setupTestDB(t)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := gormsessions.NewStore(db.Instance, true, []byte("test-session-key"))
	router.Use(sessions.Sessions("token", store))
	router.LoadHTMLGlob("../templates/*.tmpl")
	Register(router)
	return router
}

func doGet(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doPost(router *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// signup creates an account through the real endpoint and returns the
// session cookies of the logged-in user
func signup(t *testing.T, router *gin.Engine, username string) []*http.Cookie {
	t.Helper()
	w := doPost(router, "/auth/signup/", url.Values{
		"username": {username},
		"name":     {username},
		"email":    {username + "@example.com"},
		"password": {"secret123"},
	}, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("signup for %q: status %d", username, w.Code)
	}
	return w.Result().Cookies()
}

func TestPublicRouteStatusCodes(t *testing.T) {
	router := setupRouter(t)
	user, err := models.UserCreate("walker", "Walker", "w@example.com", "pass")
	if err != nil {
		t.Fatal(err)
	}
	group, err := models.GroupCreate("Test title", "test_slug", "")
	if err != nil {
		t.Fatal(err)
	}
	post, err := models.PostCreate(user.ID, "Test text", &group.ID)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path string
		want int
	}{
		{"/", http.StatusOK},
		{"/group/test_slug/", http.StatusOK},
		{"/profile/walker/", http.StatusOK},
		{fmt.Sprintf("/posts/%d/", post.ID), http.StatusOK},
		{"/auth/login/", http.StatusOK},
		{"/auth/signup/", http.StatusOK},
		{"/group/unknown/", http.StatusNotFound},
		{"/profile/unknown/", http.StatusNotFound},
		{"/posts/999999/", http.StatusNotFound},
		{"/posts/not-a-number/", http.StatusNotFound},
		{"/unexisting_page/", http.StatusNotFound},
	}
	for _, tt := range tests {
		if w := doGet(router, tt.path, nil); w.Code != tt.want {
			t.Errorf("GET %s: status %d, want %d", tt.path, w.Code, tt.want)
		}
	}
}

func TestGuestIsRedirectedToLogin(t *testing.T) {
	router := setupRouter(t)
	w := doGet(router, "/create/", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("status %d, want redirect", w.Code)
	}
	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "/auth/login/") {
		t.Errorf("redirected to %q instead of the login page", location)
	}
}

func TestCreatePostFlow(t *testing.T) {
	router := setupRouter(t)
	group, err := models.GroupCreate("Test title", "test_slug", "")
	if err != nil {
		t.Fatal(err)
	}
	cookies := signup(t, router, "author")

	w := doPost(router, "/create/", url.Values{
		"text":  {"hello"},
		"group": {fmt.Sprintf("%d", group.ID)},
	}, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("create: status %d", w.Code)
	}
	if location := w.Header().Get("Location"); location != "/profile/author/" {
		t.Errorf("redirected to %q, want the author's profile", location)
	}

	page, err := models.PostsPage(models.PostFilter{Username: "author"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(page.Posts))
	}
	post := page.Posts[0]
	if post.Text != "hello" || post.User.Username != "author" || post.CreatedAt == 0 {
		t.Errorf("stored post: %+v", post)
	}

	detail := doGet(router, fmt.Sprintf("/posts/%d/", post.ID), nil)
	if detail.Code != http.StatusOK {
		t.Fatalf("detail: status %d", detail.Code)
	}
	body := detail.Body.String()
	if !strings.Contains(body, "hello") || !strings.Contains(body, "Test title") {
		t.Error("detail page misses the text or the group title")
	}
}

func TestCreatePostValidationWritesNothing(t *testing.T) {
	router := setupRouter(t)
	cookies := signup(t, router, "author")

	tests := []url.Values{
		{"text": {"   "}},                          // blank text
		{"text": {"fine"}, "group": {"999"}},       // unknown group id
		{"text": {"fine"}, "group": {"not-an-id"}}, // unparsable group id
	}
	for _, form := range tests {
		w := doPost(router, "/create/", form, cookies)
		if w.Code != http.StatusOK {
			t.Errorf("form %v: status %d, want the form re-rendered", form, w.Code)
		}
	}
	page, err := models.PostsPage(models.PostFilter{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Posts) != 0 {
		t.Errorf("invalid submissions created %d posts", len(page.Posts))
	}
}

func TestEditByNonAuthorChangesNothing(t *testing.T) {
	router := setupRouter(t)
	group, err := models.GroupCreate("Test title", "test_slug", "")
	if err != nil {
		t.Fatal(err)
	}
	authorCookies := signup(t, router, "author")
	author, err := models.UserByUsername("author")
	if err != nil {
		t.Fatal(err)
	}
	post, err := models.PostCreate(author.ID, "original", &group.ID)
	if err != nil {
		t.Fatal(err)
	}
	intruderCookies := signup(t, router, "intruder")

	editPath := fmt.Sprintf("/posts/%d/edit/", post.ID)
	w := doPost(router, editPath, url.Values{"text": {"hijacked"}}, intruderCookies)
	if w.Code != http.StatusFound {
		t.Fatalf("status %d, want redirect away from the form", w.Code)
	}
	if location := w.Header().Get("Location"); location != fmt.Sprintf("/posts/%d/", post.ID) {
		t.Errorf("redirected to %q", location)
	}
	got, err := models.PostByID(post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "original" || got.GroupID == nil || *got.GroupID != group.ID ||
		got.UserID != author.ID || got.CreatedAt != post.CreatedAt {
		t.Errorf("non-author edit modified the post: %+v", got)
	}

	// The author can still edit
	w = doPost(router, editPath, url.Values{"text": {"revised"}}, authorCookies)
	if w.Code != http.StatusFound {
		t.Fatalf("author edit: status %d", w.Code)
	}
	got, err = models.PostByID(post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "revised" || got.CreatedAt != post.CreatedAt || got.UserID != author.ID {
		t.Errorf("author edit went wrong: %+v", got)
	}
}

func TestPaginationOverHTTP(t *testing.T) {
	router := setupRouter(t)
	config.POSTS_PER_PAGE = 10
	user, err := models.UserCreate("prolific", "P", "p@example.com", "pass")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 13; i++ {
		if _, err = models.PostCreate(user.ID, fmt.Sprintf("post number %d", i), nil); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		path string
		want int
	}{
		{"/", 10},
		{"/?page=2", 3},
		{"/?page=3", 0}, // past the end: still a page, not an error
		{"/?page=bogus", 10},
		{"/profile/prolific/?page=2", 3},
	}
	for _, tt := range tests {
		w := doGet(router, tt.path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("GET %s: status %d", tt.path, w.Code)
			continue
		}
		if got := strings.Count(w.Body.String(), "<article>"); got != tt.want {
			t.Errorf("GET %s: %d posts on the page, want %d", tt.path, got, tt.want)
		}
	}
}

func TestCommentFlow(t *testing.T) {
	router := setupRouter(t)
	cookies := signup(t, router, "talker")
	talker, err := models.UserByUsername("talker")
	if err != nil {
		t.Fatal(err)
	}
	post, err := models.PostCreate(talker.ID, "discuss", nil)
	if err != nil {
		t.Fatal(err)
	}

	commentPath := fmt.Sprintf("/posts/%d/comment/", post.ID)
	if w := doPost(router, commentPath, url.Values{"text": {"me first"}}, cookies); w.Code != http.StatusFound {
		t.Fatalf("comment: status %d", w.Code)
	}
	// Guests cannot comment
	if w := doPost(router, commentPath, url.Values{"text": {"anon"}}, nil); w.Code != http.StatusFound {
		t.Fatalf("guest comment: status %d", w.Code)
	} else if !strings.HasPrefix(w.Header().Get("Location"), "/auth/login/") {
		t.Errorf("guest was not sent to login: %q", w.Header().Get("Location"))
	}

	comments, err := models.CommentsForPost(post.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 || comments[0].Text != "me first" {
		t.Errorf("stored comments: %+v", comments)
	}
}

func TestLoginLogout(t *testing.T) {
	router := setupRouter(t)
	signup(t, router, "returning")

	w := doPost(router, "/auth/login/", url.Values{
		"username": {"returning"},
		"password": {"wrong"},
	}, nil)
	if w.Code != http.StatusOK {
		t.Errorf("failed login: status %d, want the form back", w.Code)
	}

	w = doPost(router, "/auth/login/", url.Values{
		"username": {"returning"},
		"password": {"secret123"},
		"next":     {"/create/"},
	}, nil)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/create/" {
		t.Fatalf("login: status %d, location %q", w.Code, w.Header().Get("Location"))
	}
	cookies := w.Result().Cookies()

	if w = doGet(router, "/create/", cookies); w.Code != http.StatusOK {
		t.Errorf("GET /create/ when logged in: status %d", w.Code)
	}

	if w = doPost(router, "/auth/logout/", url.Values{}, cookies); w.Code != http.StatusFound {
		t.Fatalf("logout: status %d", w.Code)
	}
	cookies = append(cookies, w.Result().Cookies()...)
	if w = doGet(router, "/create/", cookies); w.Code != http.StatusFound {
		t.Errorf("GET /create/ after logout: status %d, want a login redirect", w.Code)
	}
}
