package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	. "github.com/alecheli/databoard"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	board, err := NewBoard(cfg.Board.Owner, cfg.Board.Password)
	if err != nil {
		log.Fatalf("invalid board credentials: %v", err)
	}

	sessions := NewSessionStore()

	router := httprouter.New()
	router.Handler(http.MethodPost, "/v1/sessions", LoginHandler(board, sessions))
	router.Handler(http.MethodDelete, "/v1/sessions", LogoutHandler(sessions))
	router.Handler(http.MethodPost, "/v1/categories", RequireOwner(CreateCategoryHandler(board), sessions))
	router.Handler(http.MethodDelete, "/v1/categories/:name", RequireOwner(RemoveCategoryHandler(board), sessions))
	router.Handler(http.MethodGet, "/v1/categories/:name/posts", RequireOwner(ListCategoryHandler(board), sessions))
	router.Handler(http.MethodPost, "/v1/categories/:name/friends", RequireOwner(AddFriendHandler(board), sessions))
	router.Handler(http.MethodDelete, "/v1/categories/:name/friends/:friend", RequireOwner(RemoveFriendHandler(board), sessions))
	router.Handler(http.MethodPost, "/v1/posts", RequireOwner(CreatePostHandler(board), sessions))
	router.Handler(http.MethodGet, "/v1/posts", RequireOwner(IterateAllHandler(board), sessions))
	router.Handler(http.MethodGet, "/v1/posts/find", RequireOwner(GetPostHandler(board), sessions))
	router.Handler(http.MethodDelete, "/v1/posts", RequireOwner(RemovePostHandler(board), sessions))
	router.Handler(http.MethodPost, "/v1/likes", LikeHandler(board))
	router.Handler(http.MethodGet, "/v1/friends/:friend/posts", FriendPostsHandler(board))

	log.Printf("Board of @%s ready. Listening on %s\n", board.Owner(), cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, router))
}
