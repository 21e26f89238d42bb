package databoard

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrDuplicatePost   = errors.New("post already on board")
	ErrDuplicateFriend = errors.New("friend already authorized")
	ErrFriendNotFound  = errors.New("friend not found")
)

// category is a named partition of a board: a rank-ordered collection of
// posts, unique by (author, text), plus the set of friends authorized to
// view them. Only the owning Board touches it.
type category struct {
	name    string
	posts   []*Post
	friends map[string]bool
}

func newCategory(name string) *category {
	return &category{name: name, friends: map[string]bool{}}
}

// insert adds p keeping ascending rank order. Rank-equal neighbours keep
// their relative order: a new or re-ranked post lands after them.
func (c *category) insert(p *Post) error {
	if c.find(p) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicatePost, p)
	}
	i := sort.Search(len(c.posts), func(i int) bool {
		return c.posts[i].Compare(p) > 0
	})
	c.posts = append(c.posts, nil)
	copy(c.posts[i+1:], c.posts[i:])
	c.posts[i] = p
	return nil
}

// remove deletes the post matching p's identity and returns it, or nil
// when absent.
func (c *category) remove(p *Post) *Post {
	for i, stored := range c.posts {
		if stored.SameIdentity(p) {
			c.posts = append(c.posts[:i], c.posts[i+1:]...)
			return stored
		}
	}
	return nil
}

// find returns the stored post matching p's identity, or nil.
func (c *category) find(p *Post) *Post {
	for _, stored := range c.posts {
		if stored.SameIdentity(p) {
			return stored
		}
	}
	return nil
}

func (c *category) contains(p *Post) bool {
	return c.find(p) != nil
}

func (c *category) addFriend(friend string) error {
	if c.friends[friend] {
		return fmt.Errorf("%w: %s in %s", ErrDuplicateFriend, friend, c.name)
	}
	c.friends[friend] = true
	return nil
}

func (c *category) removeFriend(friend string) error {
	if !c.friends[friend] {
		return fmt.Errorf("%w: %s in %s", ErrFriendNotFound, friend, c.name)
	}
	delete(c.friends, friend)
	return nil
}

func (c *category) hasFriend(friend string) bool {
	return c.friends[friend]
}

// snapshot returns clones of the posts in rank order; callers can never
// reach the stored posts through it.
func (c *category) snapshot() []*Post {
	out := make([]*Post, len(c.posts))
	for i, p := range c.posts {
		out[i] = p.Clone()
	}
	return out
}
