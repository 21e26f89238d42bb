package databoard

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBoardLifecycle(t *testing.T) {
	Convey("Given a board owned by ale", t, func() {
		board, err := NewBoard("ale", "secret1")
		So(err, ShouldBeNil)

		Convey("When ale creates the category main", func() {
			So(board.CreateCategory("main", "secret1"), ShouldBeNil)

			Convey("Then ale can publish a post in it", func() {
				post, err := NewPost("ale", "hello")
				So(err, ShouldBeNil)
				So(board.Put("secret1", post, "main"), ShouldBeNil)

				Convey("And publishing the same content again is rejected", func() {
					again, err := NewPost("ale", "hello")
					So(err, ShouldBeNil)
					So(errors.Is(board.Put("secret1", again, "main"), ErrDuplicatePost), ShouldBeTrue)
				})

				Convey("And the stored post is found by content alone", func() {
					key, err := NewPost("ale", "hello")
					So(err, ShouldBeNil)

					stored, err := board.Get("secret1", key)
					So(err, ShouldBeNil)
					So(stored.Category, ShouldEqual, "main")
				})

				Convey("And bob, once a friend of main, can like it", func() {
					So(board.AddFriend("main", "secret1", "bob"), ShouldBeNil)

					key, err := NewPost("ale", "hello")
					So(err, ShouldBeNil)
					So(board.Like("bob", key), ShouldBeNil)

					stored, err := board.Get("secret1", key)
					So(err, ShouldBeNil)
					So(stored.LikeCount(), ShouldEqual, 1)

					Convey("While carol, who is no friend of main, cannot", func() {
						So(errors.Is(board.Like("carol", key), ErrPostNotFound), ShouldBeTrue)

						stored, err := board.Get("secret1", key)
						So(err, ShouldBeNil)
						So(stored.LikeCount(), ShouldEqual, 1)
					})
				})
			})
		})
	})
}
