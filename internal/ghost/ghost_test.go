package ghost

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"recipebox/internal/config"
)

const (
	testKeyID  = "6489f0d0c1"
	testSecret = "a1b2c3d4e5f60718293a4b5c6d7e8f90"
)

func TestFetchRecipes(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("key") != "test_key" {
				t.Errorf("Expected key 'test_key', got '%s'", r.URL.Query().Get("key"))
			}

			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, `{
				"posts": [
					{"id": "1", "title": "Recipe 1", "html": "<h1>Recipe 1</h1>", "updated_at": "2023-10-27T10:00:00Z"},
					{"id": "2", "title": "Recipe 2", "html": "<h1>Recipe 2</h1>", "updated_at": "2023-10-28T10:00:00Z"}
				],
				"meta": {"pagination": {"page": 1, "limit": 15, "pages": 1, "total": 2, "next": null, "prev": null}}
			}`)
		}))
		defer server.Close()

		cfg := &config.Config{
			GhostURL:        server.URL,
			GhostContentKey: "test_key",
		}
		client := NewClient(cfg)

		posts, err := client.FetchRecipes(context.Background())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(posts) != 2 {
			t.Fatalf("Expected 2 posts, got %d", len(posts))
		}
		if posts[1].UpdatedAt != "2023-10-28T10:00:00Z" {
			t.Errorf("Unexpected updated_at %q", posts[1].UpdatedAt)
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("page") {
			case "1":
				fmt.Fprintln(w, `{"posts": [{"id": "1"}], "meta": {"pagination": {"page": 1, "pages": 2, "next": 2}}}`)
			case "2":
				fmt.Fprintln(w, `{"posts": [{"id": "2"}, {"id": "3"}], "meta": {"pagination": {"page": 2, "pages": 2, "next": null}}}`)
			default:
				t.Errorf("Unexpected page %q", r.URL.Query().Get("page"))
				w.WriteHeader(http.StatusBadRequest)
			}
		}))
		defer server.Close()

		client := newClient(server.URL+"/", "test_key", "", server.Client())
		posts, err := client.FetchRecipes(context.Background())
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(posts) != 3 || posts[2].ID != "3" {
			t.Fatalf("Expected 3 posts across pages, got %+v", posts)
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newClient(server.URL, "test_key", "", server.Client())
		if _, err := client.FetchRecipes(context.Background()); err == nil {
			t.Fatal("Expected an error for non-200 status code, got nil")
		}
	})
}

func TestCreatePost(t *testing.T) {
	secret, _ := hex.DecodeString(testSecret)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ghost/api/v3/admin/posts/" || r.URL.Query().Get("source") != "html" {
			t.Errorf("Unexpected request %s", r.URL)
		}

		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Ghost ")
		token, err := jwt.Parse(raw, func(tok *jwt.Token) (any, error) {
			if tok.Header["kid"] != testKeyID {
				return nil, fmt.Errorf("unexpected kid %v", tok.Header["kid"])
			}
			return secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithAudience("/v3/admin/"))
		if err != nil || !token.Valid {
			t.Errorf("Invalid admin token: %v", err)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var body struct {
			Posts []map[string]string `json:"posts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Posts) != 1 {
			t.Errorf("Unexpected body: %v", err)
		}
		if body.Posts[0]["status"] != "published" {
			t.Errorf("Expected published status, got %q", body.Posts[0]["status"])
		}

		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"posts": [{"id": "p1", "title": %q, "url": "http://blog/p1"}]}`, body.Posts[0]["title"])
	}))
	defer server.Close()

	client := newClient(server.URL, "content", testKeyID+":"+testSecret, server.Client())
	post, err := client.CreatePost(context.Background(), "Pancakes", "<p>hi</p>", true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if post.ID != "p1" || post.Title != "Pancakes" || post.URL != "http://blog/p1" {
		t.Errorf("Unexpected post %+v", post)
	}
}

func TestCreatePostAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprintln(w, `{"errors": [{"message": "Validation error"}]}`)
	}))
	defer server.Close()

	client := newClient(server.URL, "content", testKeyID+":"+testSecret, server.Client())
	_, err := client.CreatePost(context.Background(), "Pancakes", "", false)
	if err == nil || !strings.Contains(err.Error(), "status 422") {
		t.Fatalf("Expected a 422 error, got %v", err)
	}
}

func TestCreateAdminToken(t *testing.T) {
	now := time.Unix(1700000000, 0)

	c := newClient("", "", testKeyID+":"+testSecret, nil)
	raw, err := c.createAdminToken(now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}
	if claims["aud"] != "/v3/admin/" {
		t.Errorf("Unexpected aud %v", claims["aud"])
	}
	if claims["exp"].(float64)-claims["iat"].(float64) != 300 {
		t.Errorf("Expected a 5 minute token, got %v", claims)
	}

	for _, key := range []string{"", "nocolon", ":abcd", "id:not-hex"} {
		if _, err := newClient("", "", key, nil).createAdminToken(now); err == nil {
			t.Errorf("Expected an error for admin key %q", key)
		}
	}
}
