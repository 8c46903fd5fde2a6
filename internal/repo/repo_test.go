package repo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/core/database"
	"go-gin-gorm-blog/internal/domain"
	"go-gin-gorm-blog/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:       "sqlite",
		DSN:          "file:" + filepath.Join(t.TempDir(), "blog.db") + "?_foreign_keys=on",
		MaxIdleConns: 2,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, database.Migrate(db))
	return db
}

func ptr[T any](v T) *T { return &v }

type fixture struct {
	users *UserRepo
	cats  *CategoryRepo
	tags  *TagRepo
	posts *PostRepo
}

func newFixture(t *testing.T) fixture {
	db := newTestDB(t)
	return fixture{
		users: NewUserRepo(db),
		cats:  NewCategoryRepo(db),
		tags:  NewTagRepo(db),
		posts: NewPostRepo(db),
	}
}

func (f fixture) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := f.users.Create(domain.UserCreate{Email: email, Password: "Abcdef123!"})
	require.NoError(t, err)
	return u
}

func (f fixture) category(t *testing.T, name string) *domain.Category {
	t.Helper()
	c, err := f.cats.Create(domain.CategoryCreate{Name: name})
	require.NoError(t, err)
	return c
}

func (f fixture) tag(t *testing.T, name string) *domain.Tag {
	t.Helper()
	tg, err := f.tags.Create(domain.TagCreate{Name: name})
	require.NoError(t, err)
	return tg
}

func TestCreateThenGet(t *testing.T) {
	f := newFixture(t)

	c, err := f.cats.Create(domain.CategoryCreate{Name: "Go", Description: "gophers"})
	require.NoError(t, err)
	require.NotZero(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := f.cats.Get(c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Go", got.Name)
	assert.Equal(t, "gophers", got.Description)
}

func TestGetMissingReturnsNil(t *testing.T) {
	f := newFixture(t)

	got, err := f.tags.Get(42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetMultiOrdersByID(t *testing.T) {
	f := newFixture(t)
	f.tag(t, "b")
	f.tag(t, "a")

	all, err := f.tags.GetMulti()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Name)
	assert.Equal(t, "a", all[1].Name)
}

func TestUpdateWithNoChangesIsNoop(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Go")

	got, err := f.cats.Update(c, domain.CategoryUpdate{ID: c.ID})
	require.NoError(t, err)
	assert.Same(t, c, got)
}

func TestUpdateMergesOnlySuppliedFields(t *testing.T) {
	f := newFixture(t)
	c, err := f.cats.Create(domain.CategoryCreate{Name: "Go", Description: "keep me"})
	require.NoError(t, err)

	got, err := f.cats.Update(c, domain.CategoryUpdate{ID: c.ID, Name: ptr("Golang")})
	require.NoError(t, err)
	assert.Equal(t, "Golang", got.Name)
	assert.Equal(t, "keep me", got.Description)
}

func TestRemoveReturnsSnapshot(t *testing.T) {
	f := newFixture(t)
	tg := f.tag(t, "gone")

	removed, err := f.tags.Remove(tg.ID)
	require.NoError(t, err)
	assert.Equal(t, "gone", removed.Name)

	got, err := f.tags.Get(tg.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = f.tags.Remove(tg.ID)
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	f.category(t, "Golang")
	f.category(t, "Rust")
	_, err := f.cats.Create(domain.CategoryCreate{Name: "Misc", Description: "about GO tooling"})
	require.NoError(t, err)

	got, err := f.cats.Search("go")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Golang", got[0].Name)
	assert.Equal(t, "Misc", got[1].Name)

	none, err := f.cats.Search("python")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSearchEscapesWildcards(t *testing.T) {
	f := newFixture(t)
	f.tag(t, "100%")
	f.tag(t, "1000")

	got, err := f.tags.Search("0%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100%", got[0].Name)
}

func TestUserPasswordIsHashed(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@x.com")

	assert.NotEqual(t, "Abcdef123!", u.Password)
	assert.True(t, utils.CheckPassword("Abcdef123!", u.Password))

	byEmail, err := f.users.GetByEmail("a@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)

	missing, err := f.users.GetByID(999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserUpdatePassword(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@x.com")
	oldHash := u.Password

	same, err := f.users.Update(u, domain.UserUpdate{ID: u.ID, Password: ptr(""), FirstName: ptr("Ada")})
	require.NoError(t, err)
	assert.Equal(t, oldHash, same.Password)
	assert.Equal(t, "Ada", same.FirstName)

	changed, err := f.users.Update(same, domain.UserUpdate{ID: u.ID, Password: ptr("Zyxwvu987?")})
	require.NoError(t, err)
	assert.NotEqual(t, "Zyxwvu987?", changed.Password)
	assert.True(t, utils.CheckPassword("Zyxwvu987?", changed.Password))
}

func TestUserList(t *testing.T) {
	f := newFixture(t)
	f.user(t, "ada@x.com")
	f.user(t, "bob@x.com")
	f.user(t, "carol@x.com")

	page, total, err := f.users.List(0, 2, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 2)

	hits, total, err := f.users.List(0, 10, "BOB")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, hits, 1)
	assert.Equal(t, "bob@x.com", hits[0].Email)
}

func TestPostDropsUnknownTags(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@x.com")
	c := f.category(t, "Go")
	tg := f.tag(t, "generics")

	p, err := f.posts.Create(domain.PostCreate{
		Title: "T", Body: "b", AuthorID: u.ID, CategoryID: c.ID, Tags: []uint{tg.ID, tg.ID + 1},
	})
	require.NoError(t, err)
	require.Len(t, p.Tags, 1)
	assert.Equal(t, tg.ID, p.Tags[0].ID)
}

func TestPostRelationships(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@x.com")
	other := f.user(t, "b@x.com")
	c := f.category(t, "Go")
	t1 := f.tag(t, "one")
	t2 := f.tag(t, "two")

	p1, err := f.posts.Create(domain.PostCreate{Title: "first", Body: "b", AuthorID: u.ID, CategoryID: c.ID, Tags: []uint{t1.ID}})
	require.NoError(t, err)
	_, err = f.posts.Create(domain.PostCreate{Title: "second", Body: "b", AuthorID: other.ID, CategoryID: c.ID, Tags: []uint{t1.ID, t2.ID}})
	require.NoError(t, err)

	byAuthor, err := f.posts.ByAuthor(u.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, p1.ID, byAuthor[0].ID)

	byCat, err := f.posts.ByCategory(c.ID)
	require.NoError(t, err)
	assert.Len(t, byCat, 2)

	byTag, err := f.posts.ByTag(t2.ID)
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, "second", byTag[0].Title)
	assert.Len(t, byTag[0].Tags, 2)
}

func TestPostUpdateReplacesTags(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@x.com")
	c := f.category(t, "Go")
	t1 := f.tag(t, "one")
	t2 := f.tag(t, "two")

	p, err := f.posts.Create(domain.PostCreate{Title: "T", Body: "b", AuthorID: u.ID, CategoryID: c.ID, Tags: []uint{t1.ID}})
	require.NoError(t, err)

	p, err = f.posts.Update(p, domain.PostUpdate{ID: p.ID, Title: ptr("T2"), Tags: &[]uint{t2.ID}})
	require.NoError(t, err)
	assert.Equal(t, "T2", p.Title)
	require.Len(t, p.Tags, 1)
	assert.Equal(t, t2.ID, p.Tags[0].ID)

	p, err = f.posts.Update(p, domain.PostUpdate{ID: p.ID, Tags: &[]uint{}})
	require.NoError(t, err)
	assert.Empty(t, p.Tags)
}

func TestRemoveCascades(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "a@x.com")
	c := f.category(t, "Go")
	other := f.category(t, "Rust")
	tg := f.tag(t, "one")

	_, err := f.posts.Create(domain.PostCreate{Title: "go", Body: "b", AuthorID: u.ID, CategoryID: c.ID, Tags: []uint{tg.ID}})
	require.NoError(t, err)
	rust, err := f.posts.Create(domain.PostCreate{Title: "rust", Body: "b", AuthorID: u.ID, CategoryID: other.ID, Tags: []uint{tg.ID}})
	require.NoError(t, err)

	_, err = f.cats.Remove(c.ID)
	require.NoError(t, err)
	left, err := f.posts.GetMulti()
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, rust.ID, left[0].ID)

	_, err = f.tags.Remove(tg.ID)
	require.NoError(t, err)
	p, err := f.posts.Get(rust.ID)
	require.NoError(t, err)
	assert.Empty(t, p.Tags)

	_, err = f.users.Remove(u.ID)
	require.NoError(t, err)
	left, err = f.posts.GetMulti()
	require.NoError(t, err)
	assert.Empty(t, left)
}
