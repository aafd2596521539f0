package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/articleboard/internal/usecase/contract"
)

type memArticleRepo struct {
	mu        sync.Mutex
	nextID    uint64
	articles  map[uint64]*entity.Article
	comments  map[uint64]*entity.Comment
	nextCmtID uint64
	getCalls  int
	failWrite error
}

func newMemArticleRepo() *memArticleRepo {
	return &memArticleRepo{
		articles: map[uint64]*entity.Article{},
		comments: map[uint64]*entity.Comment{},
	}
}

func (r *memArticleRepo) CreateArticle(ctx context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	r.nextID++
	article.ID = r.nextID
	cp := *article
	r.articles[article.ID] = &cp
	return nil
}

func (r *memArticleRepo) GetArticleByID(ctx context.Context, id uint64) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	a, ok := r.articles[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memArticleRepo) GetArticleCounters(ctx context.Context, id uint64) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.articles[id]
	if !ok {
		return 0, 0, entity.ErrNotFound
	}
	return a.LikeCount, a.CommentCount, nil
}

func (r *memArticleRepo) list(filter func(*entity.Article) bool, p contract.Pagination) ([]*entity.Article, int64) {
	var all []*entity.Article
	for _, a := range r.articles {
		if filter(a) {
			cp := *a
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + p.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total
}

func (r *memArticleRepo) ListArticles(ctx context.Context, p contract.Pagination) ([]*entity.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page, total := r.list(func(*entity.Article) bool { return true }, p)
	return page, total, nil
}

func (r *memArticleRepo) ListArticlesByAuthor(ctx context.Context, authorID uint64, p contract.Pagination) ([]*entity.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	page, total := r.list(func(a *entity.Article) bool { return a.AuthorID == authorID }, p)
	return page, total, nil
}

func (r *memArticleRepo) UpdateArticle(ctx context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	if _, ok := r.articles[article.ID]; !ok {
		return entity.ErrNotFound
	}
	cp := *article
	r.articles[article.ID] = &cp
	return nil
}

func (r *memArticleRepo) DeleteArticle(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.articles[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

// memCommentRepo shares state with memArticleRepo so comment_count moves with comments.
type memCommentRepo struct {
	articles *memArticleRepo
}

func (r *memCommentRepo) CreateComment(ctx context.Context, comment *entity.Comment) error {
	r.articles.mu.Lock()
	defer r.articles.mu.Unlock()
	a, ok := r.articles.articles[comment.ArticleID]
	if !ok {
		return entity.ErrNotFound
	}
	r.articles.nextCmtID++
	comment.ID = r.articles.nextCmtID
	cp := *comment
	r.articles.comments[comment.ID] = &cp
	a.CommentCount++
	return nil
}

func (r *memCommentRepo) GetCommentByID(ctx context.Context, id uint64) (*entity.Comment, error) {
	r.articles.mu.Lock()
	defer r.articles.mu.Unlock()
	c, ok := r.articles.comments[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCommentRepo) ListCommentsByArticle(ctx context.Context, articleID uint64) ([]*entity.Comment, error) {
	r.articles.mu.Lock()
	defer r.articles.mu.Unlock()
	out := []*entity.Comment{}
	for _, c := range r.articles.comments {
		if c.ArticleID == articleID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memCommentRepo) DeleteComment(ctx context.Context, id uint64) error {
	r.articles.mu.Lock()
	defer r.articles.mu.Unlock()
	c, ok := r.articles.comments[id]
	if !ok {
		return entity.ErrNotFound
	}
	delete(r.articles.comments, id)
	if a, ok := r.articles.articles[c.ArticleID]; ok {
		a.CommentCount--
	}
	return nil
}

type firstWordsPreviewer struct{}

func (firstWordsPreviewer) Preview(content string) string {
	fields := strings.Fields(content)
	if len(fields) > 3 {
		fields = fields[:3]
	}
	return strings.Join(fields, " ")
}

type memUserRepo struct {
	mu       sync.Mutex
	nextID   uint64
	users    map[uint64]*entity.User
	profiles map[uint64]*entity.Profile
	failSave error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uint64]*entity.User{}, profiles: map[uint64]*entity.Profile{}}
}

func (r *memUserRepo) CreateUser(ctx context.Context, user *entity.User, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	profile.UserID = user.ID
	u, p := *user, *profile
	r.users[user.ID] = &u
	r.profiles[user.ID] = &p
	return nil
}

func (r *memUserRepo) GetUserByID(ctx context.Context, id uint64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *memUserRepo) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *memUserRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r *memUserRepo) UpdateUser(ctx context.Context, user *entity.User, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave != nil {
		return r.failSave
	}
	u, p := *user, *profile
	r.users[user.ID] = &u
	r.profiles[user.ID] = &p
	return nil
}

func (r *memUserRepo) UpdateUserPassword(ctx context.Context, id uint64, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return entity.ErrNotFound
	}
	u.PasswordHash = hashedPassword
	return nil
}

func (r *memUserRepo) GetProfile(ctx context.Context, userID uint64) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entity.Token
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]*entity.Token{}}
}

func (r *memTokenRepo) CreateToken(ctx context.Context, token *entity.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *token
	r.tokens[token.ID] = &cp
	return nil
}

func (r *memTokenRepo) GetTokenByID(ctx context.Context, id string) (*entity.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTokenRepo) RotateToken(ctx context.Context, id string, newToken *entity.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return entity.ErrNotFound
	}
	t.Revoked = true
	cp := *newToken
	r.tokens[newToken.ID] = &cp
	return nil
}

func (r *memTokenRepo) RevokeToken(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return entity.ErrNotFound
	}
	t.Revoked = true
	return nil
}

func (r *memTokenRepo) RevokeAllTokensForUser(ctx context.Context, userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (r *memTokenRepo) activeFor(userID uint64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID && !t.Revoked {
			n++
		}
	}
	return n
}

// plainHasher prefixes instead of hashing so tests stay fast and readable.
type plainHasher struct{}

func (plainHasher) HashPassword(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) ComparePasswordHash(password, hashedPassword string) error {
	if "hashed:"+password != hashedPassword {
		return errors.New("mismatch")
	}
	return nil
}

func (plainHasher) HashString(s string) string { return "sha:" + s }

func (plainHasher) CheckHash(s, hash string) bool { return "sha:"+s == hash }

// fakeJWT issues tokens of the form "access:<uid>" and "refresh:<uid>:<jti>".
type fakeJWT struct {
	mu  sync.Mutex
	seq int
}

func (j *fakeJWT) GenerateAccessToken(userID uint64) (string, error) {
	return "access:" + itoa(userID), nil
}

func (j *fakeJWT) GenerateRefreshToken(userID uint64) (string, string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.seq++
	jti := "jti-" + itoa(uint64(j.seq))
	return "refresh:" + itoa(userID) + ":" + jti, jti, nil
}

func (j *fakeJWT) ParseAccessToken(token string) (*entity.Claims, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 2 || parts[0] != "access" {
		return nil, errors.New("malformed")
	}
	return &entity.Claims{UserID: atoi(parts[1])}, nil
}

func (j *fakeJWT) ParseRefreshToken(token string) (*entity.Claims, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != "refresh" {
		return nil, errors.New("malformed")
	}
	return &entity.Claims{UserID: atoi(parts[1]), TokenID: parts[2]}, nil
}

func itoa(n uint64) string { return strconv.FormatUint(n, 10) }

func atoi(s string) uint64 {
	n, _ := strconv.ParseUint(s, 10, 64)
	return n
}

type fakeConfig struct {
	pageSize int
	strict   bool
}

func (c fakeConfig) GetAppBaseURL() string                  { return "http://localhost:8080" }
func (c fakeConfig) GetAccessTokenExpiry() time.Duration  { return 15 * time.Minute }
func (c fakeConfig) GetRefreshTokenExpiry() time.Duration { return 24 * time.Hour }
func (c fakeConfig) GetProfilePageSize() int              { return c.pageSize }
func (c fakeConfig) GetStrictReactions() bool             { return c.strict }

type simpleValidator struct{}

func (simpleValidator) ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return errors.New("invalid email")
	}
	return nil
}

func (simpleValidator) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

type memAvatarStorage struct {
	mu      sync.Mutex
	seq     int
	files   map[string][]byte
	meta    map[string]*entity.Avatar
	deleted []string
}

func newMemAvatarStorage() *memAvatarStorage {
	return &memAvatarStorage{files: map[string][]byte{}, meta: map[string]*entity.Avatar{}}
}

func (s *memAvatarStorage) UploadAvatar(ctx context.Context, ownerID uint64, filename, contentType string, content io.Reader) (*entity.Avatar, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := "avatar-" + itoa(uint64(s.seq))
	s.files[id] = data
	a := &entity.Avatar{ID: id, Filename: filename, ContentType: contentType, Size: int64(len(data)), OwnerID: ownerID}
	s.meta[id] = a
	return a, nil
}

func (s *memAvatarStorage) OpenAvatar(ctx context.Context, id string) (io.ReadCloser, *entity.Avatar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[id]
	if !ok {
		return nil, nil, entity.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), s.meta[id], nil
}

func (s *memAvatarStorage) DeleteAvatar(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	delete(s.files, id)
	delete(s.meta, id)
	return nil
}

var _ usecasecontract.IConfigProvider = fakeConfig{}
