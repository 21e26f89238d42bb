package databoard

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUnauthorized      = errors.New("wrong credentials")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrPostNotFound      = errors.New("post not found")
	ErrAuthorMismatch    = errors.New("post author is not the board owner")
)

// Board is a single-owner, password-protected content board. It owns
// every category and post reachable from it exclusively: posts go in and
// come out as copies, so callers never alias stored data.
//
// All operations are safe for concurrent use by multiple goroutines.
type Board struct {
	mu         sync.RWMutex
	owner      string
	secretHash []byte
	categories map[string]*category
}

// NewBoard validates owner and password and returns an empty board. The
// password is kept as a bcrypt hash; both fields are immutable afterwards.
func NewBoard(owner, password string) (*Board, error) {
	if err := ValidateIdentity(owner); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword(secretDigest(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Board{owner: owner, secretHash: hash, categories: map[string]*category{}}, nil
}

// Owner returns the board owner's identity.
func (b *Board) Owner() string {
	return b.owner
}

// CheckPassword verifies the password's shape first, then its value.
// A malformed password is ErrInvalidField even when it could never match;
// a well-formed wrong one is ErrUnauthorized.
func (b *Board) CheckPassword(password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword(b.secretHash, secretDigest(password)) != nil {
		return ErrUnauthorized
	}
	return nil
}

// secretDigest folds a password into a fixed-size digest before bcrypt
// sees it. bcrypt only reads the first 72 bytes of its input; the
// validator admits up to 128 characters, so hashing the raw string would
// let any wrong password sharing the secret's 72-byte prefix through.
func secretDigest(password string) []byte {
	digest := sha256.Sum256([]byte(password))
	return digest[:]
}

// CreateCategory registers a new empty category under name.
func (b *Board) CreateCategory(name, password string) error {
	if err := ValidateCategoryName(name); err != nil {
		return err
	}
	if err := b.CheckPassword(password); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.categories[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}
	b.categories[name] = newCategory(name)
	return nil
}

// RemoveCategory drops the category along with all its posts and friend
// authorizations.
func (b *Board) RemoveCategory(name, password string) error {
	if err := ValidateCategoryName(name); err != nil {
		return err
	}
	if err := b.CheckPassword(password); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.categories[name]; !ok {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	delete(b.categories, name)
	return nil
}

// AddFriend authorizes friend to view posts in the named category.
func (b *Board) AddFriend(name, password, friend string) error {
	if err := ValidateCategoryName(name); err != nil {
		return err
	}
	if err := ValidateIdentity(friend); err != nil {
		return err
	}
	if err := b.CheckPassword(password); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cat, ok := b.categories[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	return cat.addFriend(friend)
}

// RemoveFriend withdraws friend's authorization for the named category.
func (b *Board) RemoveFriend(name, password, friend string) error {
	if err := ValidateCategoryName(name); err != nil {
		return err
	}
	if err := ValidateIdentity(friend); err != nil {
		return err
	}
	if err := b.CheckPassword(password); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	cat, ok := b.categories[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	return cat.removeFriend(friend)
}

// Put stores a copy of post in the named category, stamped with it. Posts
// are unique by (author, text) across the whole board, not just the
// target category, and only the owner may author them.
func (b *Board) Put(password string, post *Post, name string) error {
	if post == nil {
		panic("databoard: Put called with nil post")
	}
	if err := ValidateCategoryName(name); err != nil {
		return err
	}
	if err := b.CheckPassword(password); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if post.Author != b.owner {
		return fmt.Errorf("%w: @%s", ErrAuthorMismatch, post.Author)
	}
	cat, ok := b.categories[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	for _, other := range b.categories {
		if other.contains(post) {
			return fmt.Errorf("%w: %s", ErrDuplicatePost, post)
		}
	}
	stored := post.Clone()
	// The stamp below is authoritative; whatever category the caller's
	// copy carries is never trusted.
	stored.Category = ""
	stored.assignCategory(name)
	return cat.insert(stored)
}

// Get returns a copy of the stored post matching key's (author, text)
// identity, wherever it lives; the key's own category is ignored.
func (b *Board) Get(password string, key *Post) (*Post, error) {
	if key == nil {
		panic("databoard: Get called with nil post")
	}
	if err := b.CheckPassword(password); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, name := range b.sortedNames() {
		if stored := b.categories[name].find(key); stored != nil {
			return stored.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPostNotFound, key)
}

// Remove deletes the stored post matching key's identity, searching every
// category, and returns it.
func (b *Board) Remove(password string, key *Post) (*Post, error) {
	if key == nil {
		panic("databoard: Remove called with nil post")
	}
	if err := b.CheckPassword(password); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range b.sortedNames() {
		if stored := b.categories[name].remove(key); stored != nil {
			return stored, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPostNotFound, key)
}

// ListCategory returns a ranked snapshot of the named category's posts.
func (b *Board) ListCategory(password, name string) ([]*Post, error) {
	if err := ValidateCategoryName(name); err != nil {
		return nil, err
	}
	if err := b.CheckPassword(password); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	cat, ok := b.categories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	return cat.snapshot(), nil
}

// Like records friend's like on the post matching key's identity, looking
// only in categories where friend is authorized, and re-ranks the post.
// An absent post and a post the friend may not see fail identically on
// purpose: the caller cannot probe for content it is not authorized for.
func (b *Board) Like(friend string, key *Post) error {
	if key == nil {
		panic("databoard: Like called with nil post")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range b.sortedNames() {
		cat := b.categories[name]
		if !cat.hasFriend(friend) {
			continue
		}
		stored := cat.find(key)
		if stored == nil {
			continue
		}
		if stored.likedBy(friend) {
			return fmt.Errorf("%w: %s", ErrDuplicateLike, friend)
		}
		cat.remove(stored)
		if err := stored.AddLike(friend); err != nil {
			cat.insert(stored)
			return err
		}
		return cat.insert(stored)
	}
	return fmt.Errorf("%w or @%s is not authorized to view it", ErrPostNotFound, friend)
}

// IterateAll returns copies of every post on the board in ascending rank
// order.
func (b *Board) IterateAll(password string) ([]*Post, error) {
	if err := b.CheckPassword(password); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	all := []*Post{}
	for _, cat := range b.categories {
		all = append(all, cat.snapshot()...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Compare(all[j]) < 0
	})
	return all, nil
}

// IterateFriend returns copies of the posts in every category friend is
// authorized to view, each category's internal rank order preserved. A
// friend authorized nowhere gets an empty slice, not an error.
func (b *Board) IterateFriend(friend string) ([]*Post, error) {
	if err := ValidateIdentity(friend); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	visible := []*Post{}
	for _, name := range b.sortedNames() {
		cat := b.categories[name]
		if cat.hasFriend(friend) {
			visible = append(visible, cat.snapshot()...)
		}
	}
	return visible, nil
}

// sortedNames keeps cross-category scans deterministic.
func (b *Board) sortedNames() []string {
	names := make([]string, 0, len(b.categories))
	for name := range b.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
