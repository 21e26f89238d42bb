package databoard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Service is the board contract the HTTP layer drives. *Board implements
// it; handler tests substitute spies.
type Service interface {
	Owner() string
	CheckPassword(password string) error
	CreateCategory(name, password string) error
	RemoveCategory(name, password string) error
	AddFriend(name, password, friend string) error
	RemoveFriend(name, password, friend string) error
	Put(password string, post *Post, category string) error
	Get(password string, key *Post) (*Post, error)
	Remove(password string, key *Post) (*Post, error)
	ListCategory(password, name string) ([]*Post, error)
	Like(friend string, key *Post) error
	IterateAll(password string) ([]*Post, error)
	IterateFriend(friend string) ([]*Post, error)
}

type loginRequest struct {
	Password string `json:"password"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

type friendRequest struct {
	Friend string `json:"friend"`
}

type postRequest struct {
	Author   string `json:"author"`
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

type likeRequest struct {
	Friend string `json:"friend"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

type postResponse struct {
	Author    string   `json:"author"`
	Category  string   `json:"category"`
	Text      string   `json:"text"`
	Likes     []string `json:"likes"`
	LikeCount int      `json:"like_count"`
}

func newPostResponse(p *Post) postResponse {
	return postResponse{
		Author:    p.Author,
		Category:  p.Category,
		Text:      p.Text,
		Likes:     p.Likes(),
		LikeCount: p.LikeCount(),
	}
}

func newPostListResponse(posts []*Post) []postResponse {
	out := make([]postResponse, len(posts))
	for i, p := range posts {
		out[i] = newPostResponse(p)
	}
	return out
}

// LoginHandler checks the board password and opens an owner session,
// returning its bearer token.
func LoginHandler(svc Service, sessions *sessionStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := svc.CheckPassword(req.Password); err != nil {
			encodeError(err, w)
			return
		}
		token, err := newSessionToken(sessions.create(req.Password))
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"token": token, "owner": svc.Owner()})
	})
}

// CreateCategoryHandler registers a new category.
func CreateCategoryHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := svc.CreateCategory(req.Name, passwordFromContext(r.Context())); err != nil {
			encodeError(err, w)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"name": req.Name})
	})
}

// RemoveCategoryHandler drops a category with everything in it.
func RemoveCategoryHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := httprouter.ParamsFromContext(r.Context()).ByName("name")
		if err := svc.RemoveCategory(name, passwordFromContext(r.Context())); err != nil {
			encodeError(err, w)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// AddFriendHandler authorizes a friend for a category.
func AddFriendHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		name := httprouter.ParamsFromContext(r.Context()).ByName("name")
		var req friendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := svc.AddFriend(name, passwordFromContext(r.Context()), req.Friend); err != nil {
			encodeError(err, w)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"category": name, "friend": req.Friend})
	})
}

// RemoveFriendHandler withdraws a friend's authorization for a category.
func RemoveFriendHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())
		err := svc.RemoveFriend(params.ByName("name"), passwordFromContext(r.Context()), params.ByName("friend"))
		if err != nil {
			encodeError(err, w)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// CreatePostHandler stores a new post in a category.
func CreatePostHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		post, err := NewPost(req.Author, req.Text)
		if err != nil {
			encodeError(err, w)
			return
		}
		if err := svc.Put(passwordFromContext(r.Context()), post, req.Category); err != nil {
			encodeError(err, w)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(postResponse{Author: req.Author, Category: req.Category, Text: req.Text, Likes: []string{}})
	})
}

// GetPostHandler looks a post up by its (author, text) identity, taken
// from query parameters; the category is found, never supplied.
func GetPostHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		key, err := NewPost(r.URL.Query().Get("author"), r.URL.Query().Get("text"))
		if err != nil {
			encodeError(err, w)
			return
		}
		post, err := svc.Get(passwordFromContext(r.Context()), key)
		if err != nil {
			encodeError(err, w)
			return
		}
		json.NewEncoder(w).Encode(newPostResponse(post))
	})
}

// RemovePostHandler deletes a post by identity and echoes it back.
func RemovePostHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		key, err := NewPost(req.Author, req.Text)
		if err != nil {
			encodeError(err, w)
			return
		}
		post, err := svc.Remove(passwordFromContext(r.Context()), key)
		if err != nil {
			encodeError(err, w)
			return
		}
		json.NewEncoder(w).Encode(newPostResponse(post))
	})
}

// ListCategoryHandler returns a category's posts in rank order.
func ListCategoryHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		name := httprouter.ParamsFromContext(r.Context()).ByName("name")
		posts, err := svc.ListCategory(passwordFromContext(r.Context()), name)
		if err != nil {
			encodeError(err, w)
			return
		}
		json.NewEncoder(w).Encode(newPostListResponse(posts))
	})
}

// LikeHandler records a friend's like. No owner session here: friends
// identify themselves by name, and an unauthorized friend learns nothing
// beyond "not found".
func LikeHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var req likeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		key, err := NewPost(req.Author, req.Text)
		if err != nil {
			encodeError(err, w)
			return
		}
		if err := svc.Like(req.Friend, key); err != nil {
			encodeError(err, w)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"friend": req.Friend})
	})
}

// IterateAllHandler returns every post on the board, ascending by rank.
func IterateAllHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		posts, err := svc.IterateAll(passwordFromContext(r.Context()))
		if err != nil {
			encodeError(err, w)
			return
		}
		json.NewEncoder(w).Encode(newPostListResponse(posts))
	})
}

// FriendPostsHandler returns the posts a friend is authorized to view.
func FriendPostsHandler(svc Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		friend := httprouter.ParamsFromContext(r.Context()).ByName("friend")
		posts, err := svc.IterateFriend(friend)
		if err != nil {
			encodeError(err, w)
			return
		}
		json.NewEncoder(w).Encode(newPostListResponse(posts))
	})
}

func encodeError(err error, w http.ResponseWriter) {
	switch {
	case errors.Is(err, ErrInvalidField):
		w.WriteHeader(http.StatusUnprocessableEntity)
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidSession):
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, ErrAuthorMismatch):
		w.WriteHeader(http.StatusForbidden)
	case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrPostNotFound),
		errors.Is(err, ErrFriendNotFound), errors.Is(err, ErrLikeNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrDuplicateCategory), errors.Is(err, ErrDuplicatePost),
		errors.Is(err, ErrDuplicateFriend), errors.Is(err, ErrDuplicateLike):
		w.WriteHeader(http.StatusConflict)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}
