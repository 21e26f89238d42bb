package databoard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedPost(t *testing.T, author, text, category string, likers ...string) *Post {
	t.Helper()
	p := mustPost(t, author, text)
	p.assignCategory(category)
	for _, who := range likers {
		require.NoError(t, p.AddLike(who))
	}
	return p
}

func texts(posts []*Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Text
	}
	return out
}

func TestCategory_InsertKeepsRankOrder(t *testing.T) {
	cat := newCategory("cats")

	require.NoError(t, cat.insert(storedPost(t, "ale", "mm", "cats")))
	require.NoError(t, cat.insert(storedPost(t, "ale", "zz", "cats", "bob")))
	require.NoError(t, cat.insert(storedPost(t, "ale", "aa", "cats")))

	assert.Equal(t, []string{"aa", "mm", "zz"}, texts(cat.snapshot()))
}

func TestCategory_InsertRejectsIdentityDuplicate(t *testing.T) {
	cat := newCategory("cats")
	require.NoError(t, cat.insert(storedPost(t, "ale", "hi", "cats")))

	// Same identity, different like count: still a duplicate.
	err := cat.insert(storedPost(t, "ale", "hi", "cats", "bob"))
	assert.ErrorIs(t, err, ErrDuplicatePost)
	assert.Len(t, cat.posts, 1)
}

func TestCategory_RemoveByIdentity(t *testing.T) {
	cat := newCategory("cats")
	stored := storedPost(t, "ale", "hi", "cats", "bob")
	require.NoError(t, cat.insert(stored))

	key := mustPost(t, "ale", "hi")
	removed := cat.remove(key)
	require.NotNil(t, removed)
	assert.Same(t, stored, removed)
	assert.Nil(t, cat.remove(key))
}

func TestCategory_FindIgnoresCategoryAndLikes(t *testing.T) {
	cat := newCategory("cats")
	require.NoError(t, cat.insert(storedPost(t, "ale", "hi", "cats", "bob")))

	assert.NotNil(t, cat.find(mustPost(t, "ale", "hi")))
	assert.Nil(t, cat.find(mustPost(t, "ale", "other")))
	assert.Nil(t, cat.find(mustPost(t, "bob", "hi")))
}

func TestCategory_Friends(t *testing.T) {
	cat := newCategory("cats")

	require.NoError(t, cat.addFriend("bob"))
	assert.True(t, cat.hasFriend("bob"))

	assert.ErrorIs(t, cat.addFriend("bob"), ErrDuplicateFriend)
	assert.ErrorIs(t, cat.removeFriend("carol"), ErrFriendNotFound)

	require.NoError(t, cat.removeFriend("bob"))
	assert.False(t, cat.hasFriend("bob"))
}

func TestCategory_SnapshotIsDecoupled(t *testing.T) {
	cat := newCategory("cats")
	require.NoError(t, cat.insert(storedPost(t, "ale", "hi", "cats")))

	snap := cat.snapshot()
	require.NoError(t, snap[0].AddLike("mallory"))

	assert.Zero(t, cat.posts[0].LikeCount())
}
