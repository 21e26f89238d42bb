package databoard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateLike = errors.New("post already liked by friend")
	ErrLikeNotFound  = errors.New("like not found")
)

// Post is one unit of board content. Author and Text are fixed at
// creation and together form the post's identity; Category is stamped
// once when the post enters a board. Only the like set mutates.
type Post struct {
	Author   string
	Category string
	Text     string

	likers []string
}

// NewPost validates author and text and returns a post with no likes and
// no category.
func NewPost(author, text string) (*Post, error) {
	if err := ValidateIdentity(author); err != nil {
		return nil, err
	}
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	return &Post{Author: author, Text: text}, nil
}

// Clone returns an independent copy; mutating one never affects the other.
func (p *Post) Clone() *Post {
	c := *p
	c.likers = append([]string(nil), p.likers...)
	return &c
}

// assignCategory stamps the post exactly once. Boards always stamp before
// storing; re-stamping with a different category is a bug in the caller.
func (p *Post) assignCategory(name string) {
	if p.Category != "" && p.Category != name {
		panic(fmt.Sprintf("databoard: post %q already assigned to category %q", p.Text, p.Category))
	}
	p.Category = name
}

// AddLike records friend's like, keeping insertion order.
func (p *Post) AddLike(friend string) error {
	if err := ValidateIdentity(friend); err != nil {
		return err
	}
	if p.likedBy(friend) {
		return fmt.Errorf("%w: %s", ErrDuplicateLike, friend)
	}
	p.likers = append(p.likers, friend)
	return nil
}

// RemoveLike withdraws friend's like.
func (p *Post) RemoveLike(friend string) error {
	if err := ValidateIdentity(friend); err != nil {
		return err
	}
	for i, who := range p.likers {
		if who == friend {
			p.likers = append(p.likers[:i], p.likers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrLikeNotFound, friend)
}

func (p *Post) likedBy(friend string) bool {
	for _, who := range p.likers {
		if who == friend {
			return true
		}
	}
	return false
}

// LikeCount is always the cardinality of the like set.
func (p *Post) LikeCount() int {
	return len(p.likers)
}

// Likes returns the likers in insertion order.
func (p *Post) Likes() []string {
	return append([]string(nil), p.likers...)
}

// SameIdentity reports whether two posts are the same element:
// (author, text) match exactly. Category and likes never count.
func (p *Post) SameIdentity(o *Post) bool {
	return p.Author == o.Author && p.Text == o.Text
}

// Compare implements the board ranking: like count ascending, ties broken
// by category then text when both posts carry a category, by text alone
// otherwise. Identity equality short-circuits to 0 so that two distinct
// posts tying on every rank key are never conflated with "same post".
func (p *Post) Compare(o *Post) int {
	if p.SameIdentity(o) {
		return 0
	}
	if d := p.LikeCount() - o.LikeCount(); d != 0 {
		return d
	}
	if p.Category != "" && o.Category != "" && p.Category != o.Category {
		return strings.Compare(p.Category, o.Category)
	}
	return strings.Compare(p.Text, o.Text)
}

func (p *Post) String() string {
	if p.Category == "" {
		return fmt.Sprintf("@%s says: %s", p.Author, p.Text)
	}
	return fmt.Sprintf("@%s says in category %s: %s", p.Author, p.Category, p.Text)
}
