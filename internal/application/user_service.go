package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stibodx/user-directory/internal/domain/apperr"
	"github.com/stibodx/user-directory/internal/domain/entity"
	repo "github.com/stibodx/user-directory/internal/domain/repository"
	"github.com/stibodx/user-directory/pkg/helpers"
	"github.com/stibodx/user-directory/pkg/mailer"
)

const maxPageSize = 100

type Service struct {
	Repo         repo.UserRepository
	Mapper       *UserMapper
	Redis        *redis.Client
	CacheTTL     time.Duration
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
	Events       *helpers.RabbitPublisher
}

func NewService(r repo.UserRepository, mapper *UserMapper, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string, events *helpers.RabbitPublisher) *Service {
	return &Service{
		Repo:         r,
		Mapper:       mapper,
		Redis:        rdb,
		CacheTTL:     cacheTTL,
		Logger:       logger,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Events:       events,
	}
}

func cacheKey(id uuid.UUID) string {
	return "user:profile:" + id.String()
}

// CreateUser persists a new user (and its address, if supplied) as one
// unit. The duplicate check compares the raw provided email against
// stored values; case or whitespace variants slip past it and are
// caught by the storage unique index on lower(email) instead.
func (s *Service) CreateUser(ctx context.Context, dto *UserDTO) (*UserDTO, error) {
	existing, err := s.Repo.GetByEmail(dto.Email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.AlreadyExists("User with email %s already exists", dto.Email)
	}

	u := s.Mapper.ToEntity(dto)
	if err := s.Repo.Create(u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, apperr.AlreadyExists("User with email %s already exists", dto.Email)
		}
		return nil, err
	}

	out := s.Mapper.ToDTO(u)
	s.cacheUser(ctx, out)
	_ = s.indexUser(ctx, u)
	s.publishWelcome(ctx, out)
	return out, nil
}

func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	if s.Redis != nil {
		var cached UserDTO
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, cacheKey(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	u, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("User not found with id: %s", id)
		}
		return nil, err
	}

	dto := s.Mapper.ToDTO(u)
	s.cacheUser(ctx, dto)
	return dto, nil
}

// FindByEmail validates the input, then looks up by the trimmed and
// lower-cased value. Stored emails are matched exactly, so reads are
// normalization-insensitive while writes are not.
func (s *Service) FindByEmail(ctx context.Context, email string) (*UserDTO, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, apperr.InvalidEmail("Email cannot be null or empty")
	}
	if !isValidEmail(trimmed) {
		return nil, apperr.InvalidEmail("Invalid email format")
	}

	u, err := s.Repo.GetByEmail(strings.ToLower(trimmed))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound("User not found with email: %s", email)
		}
		return nil, err
	}
	return s.Mapper.ToDTO(u), nil
}

// FindAllPaginated reads the total count and the requested slice as two
// independent queries; under concurrent writes they may disagree, which
// is accepted. Page metadata is computed from the requested page/size
// and the observed total whether or not the page holds data.
func (s *Service) FindAllPaginated(ctx context.Context, page, size int) (*PagedResult, error) {
	if page < 0 {
		return nil, apperr.InvalidArgument("Page number cannot be negative")
	}
	if size <= 0 {
		return nil, apperr.InvalidArgument("Page size must be positive")
	}
	if size > maxPageSize {
		return nil, apperr.InvalidArgument("Page size cannot exceed 100")
	}

	totalElements, err := s.Repo.Count()
	if err != nil {
		return nil, err
	}
	users, err := s.Repo.FindPage(page*size, size)
	if err != nil {
		return nil, err
	}

	dtos := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, s.Mapper.ToDTO(u))
	}
	return &PagedResult{
		Users:      dtos,
		Pagination: NewPaginationInfo(page, size, totalElements),
	}, nil
}

// FindAll lists every user without pagination. Intended for small
// datasets or internal use.
func (s *Service) FindAll(ctx context.Context) ([]*UserDTO, error) {
	users, err := s.Repo.GetAll()
	if err != nil {
		return nil, err
	}
	dtos := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, s.Mapper.ToDTO(u))
	}
	return dtos, nil
}

// SearchUsers performs a multi_match search on email and name fields of
// the users index. Returns an empty slice when Elasticsearch is not
// configured.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "first_name", "last_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// isValidEmail requires an @ with at least one character on each side.
// Anything stricter is left to the boundary validator.
func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

func (s *Service) cacheUser(ctx context.Context, dto *UserDTO) {
	if s.Redis == nil || dto == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := helpers.RedisSetJSON(ctx, s.Redis, cacheKey(dto.ID), dto, ttl); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", dto.ID).Warn("cache user failed")
	}
}

func (s *Service) publishWelcome(ctx context.Context, dto *UserDTO) {
	if s.Events == nil {
		return
	}
	job := mailer.EmailJob{
		To:       dto.Email,
		Template: mailer.TemplateWelcome,
		Data: map[string]any{
			"FirstName": dto.FirstName,
			"LastName":  dto.LastName,
		},
	}
	if err := s.Events.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", dto.Email).Warn("publish welcome email failed")
	}
}

// indexUser indexes the user document for search. Best effort; create
// never fails on an indexing error.
func (s *Service) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID.String(),
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"job":        u.Job,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID.String(), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}
