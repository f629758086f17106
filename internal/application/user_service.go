package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jabaapp/user-service/internal/application/validation"
	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
	"github.com/jabaapp/user-service/pkg/helpers"
)

const aggregateCacheTTL = 5 * time.Minute

// UserService coordinates the user aggregate across the user, address and
/// role-assignment stores. There is no cross-store transaction: each
// operation validates, writes the user row, then reconciles the
// sub-entities. A sub-entity failure after the user row committed surfaces
// as an error without rolling the user row back; callers who need strict
// atomicity must re-read to discover partial state.
type UserService struct {
	Repo      repository.UserRepository
	Addresses *AddressService
	UserRoles *UserRoleService
	Mapper    *Mapper

	CreateValidations   []validation.CreateUserValidation
	UpdateValidations   []validation.UpdateUserValidation
	PasswordValidations []validation.UpdatePasswordValidation
	PageAndSize         validation.PageAndSize

	Logger *logrus.Logger

	// Optional collaborators, nil-safe.
	Cache        AggregateCache
	CacheTTL     time.Duration
	Events       *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserService(
	repo repository.UserRepository,
	addresses *AddressService,
	userRoles *UserRoleService,
	mapper *Mapper,
	createValidations []validation.CreateUserValidation,
	updateValidations []validation.UpdateUserValidation,
	passwordValidations []validation.UpdatePasswordValidation,
	logger *logrus.Logger,
) *UserService {
	return &UserService{
		Repo:                repo,
		Addresses:           addresses,
		UserRoles:           userRoles,
		Mapper:              mapper,
		CreateValidations:   createValidations,
		UpdateValidations:   updateValidations,
		PasswordValidations: passwordValidations,
		Logger:              logger,
	}
}

func aggregateCacheKey(id uuid.UUID) string {
	return "user:aggregate:" + id.String()
}

// FindAll returns one page of mapped aggregates. Pages are 1-based; the
// offset handed to the store is (page-1)*size.
func (s *UserService) FindAll(ctx context.Context, page, size int) ([]UserDTO, error) {
	if err := s.PageAndSize.Validate(page, size); err != nil {
		return nil, err
	}

	offset := 0
	if page > 0 {
		offset = (page - 1) * size
	}

	users, err := s.Repo.FindAll(ctx, size, offset)
	if err != nil {
		return nil, fmt.Errorf("finding users: %w", err)
	}

	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, s.Mapper.ToDTO(&users[i]))
	}
	return dtos, nil
}

// FindByID loads one aggregate, password suppressed, via the read-through
// cache when one is wired.
func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (UserDTO, error) {
	if id == uuid.Nil {
		return UserDTO{}, ErrIDRequired
	}

	if s.Cache != nil {
		var cached UserDTO
		hit, err := s.Cache.Get(ctx, aggregateCacheKey(id), &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("aggregate cache read failed")
		}
		if hit {
			return cached, nil
		}
	}

	user, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UserDTO{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		return UserDTO{}, fmt.Errorf("finding user %s: %w", id, err)
	}

	dto := s.Mapper.ToDTO(user)
	s.cacheAggregate(ctx, id, dto)
	return dto, nil
}

// Save creates the aggregate: validate, insert the user row (store assigns
// id and last-update), then the address and the role set keyed by the new
// id. Sub-entity failures surface but do not undo the user row.
func (s *UserService) Save(ctx context.Context, dto UserDTO) (UserDTO, error) {
	user, err := s.Mapper.ToEntity(ctx, dto)
	if err != nil {
		return UserDTO{}, err
	}

	for _, v := range s.CreateValidations {
		if err := v.Validate(ctx, user); err != nil {
			return UserDTO{}, err
		}
	}

	if err := s.Repo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return UserDTO{}, s.conflictFor(ctx, user)
		}
		return UserDTO{}, fmt.Errorf("%w: %v", ErrSaveUser, err)
	}

	if user.Address != nil {
		user.Address.UserID = user.ID
		if _, err := s.Addresses.Save(ctx, user.Address); err != nil {
			return UserDTO{}, err
		}
	}
	if len(user.Roles) > 0 {
		if _, err := s.UserRoles.Update(ctx, user.ID, user.Roles); err != nil {
			return UserDTO{}, err
		}
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": user.ID, "login": user.Login}).Info("user created")
	}
	publishEvent(ctx, s.Events, s.Logger, UserEvent{
		Type: EventUserCreated, UserID: user.ID.String(),
		Login: user.Login, Email: user.Email, Name: user.Name,
	})
	s.indexUser(ctx, user)

	return s.Mapper.ToDTO(user), nil
}

// Update rewrites the whole aggregate under the given id. The stored
// password is preserved; the address and the role set are always
// reconciled, so omitting either in the input removes it.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, dto UserDTO) (UserDTO, error) {
	if id == uuid.Nil {
		return UserDTO{}, ErrIDRequired
	}

	found, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UserDTO{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		return UserDTO{}, fmt.Errorf("finding user %s: %w", id, err)
	}

	user, err := s.Mapper.ToEntity(ctx, dto)
	if err != nil {
		return UserDTO{}, err
	}
	user.ID = id
	user.Password = found.Password

	for _, v := range s.UpdateValidations {
		if err := v.Validate(ctx, user); err != nil {
			return UserDTO{}, err
		}
	}

	if err := s.Repo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return UserDTO{}, s.conflictFor(ctx, user)
		}
		return UserDTO{}, fmt.Errorf("%w: %v", ErrUpdateUser, err)
	}

	// The user row is committed from here on; sub-entity errors surface
	// without undoing it.
	s.invalidateAggregate(ctx, id)

	addr, err := s.Addresses.Update(ctx, user.ID, user.Address)
	if err != nil {
		return UserDTO{}, err
	}
	user.Address = addr

	if _, err := s.UserRoles.Update(ctx, user.ID, user.Roles); err != nil {
		return UserDTO{}, err
	}

	if s.Logger != nil {
		s.Logger.WithField("user_id", user.ID).Info("user updated")
	}
	publishEvent(ctx, s.Events, s.Logger, UserEvent{
		Type: EventUserUpdated, UserID: user.ID.String(),
		Login: user.Login, Email: user.Email, Name: user.Name,
	})
	s.indexUser(ctx, user)

	return s.Mapper.ToDTO(user), nil
}

// UpdatePassword swaps the stored password after checking the old one.
// The match validation runs before anything touches a repository.
func (s *UserService) UpdatePassword(ctx context.Context, id uuid.UUID, dto UpdatePasswordDTO) (UserDTO, error) {
	up := s.Mapper.ToUpdatePassword(dto)
	for _, v := range s.PasswordValidations {
		if err := v.Validate(ctx, up); err != nil {
			return UserDTO{}, err
		}
	}

	if id == uuid.Nil {
		return UserDTO{}, ErrIDRequired
	}

	user, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return UserDTO{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		return UserDTO{}, fmt.Errorf("finding user %s: %w", id, err)
	}

	// Passwords are opaque strings here; hashing, if any, happens outside
	// this service, so the check is plain equality.
	if user.Password != up.OldPassword {
		return UserDTO{}, ErrInvalidPassword
	}

	user.Password = up.NewPassword
	if err := s.Repo.UpdatePassword(ctx, user); err != nil {
		return UserDTO{}, fmt.Errorf("%w: %v", ErrUpdatePassword, err)
	}

	s.invalidateAggregate(ctx, id)
	if s.Logger != nil {
		s.Logger.WithField("user_id", user.ID).Info("password updated")
	}
	publishEvent(ctx, s.Events, s.Logger, UserEvent{
		Type: EventPasswordChanged, UserID: user.ID.String(), Email: user.Email,
	})

	return s.Mapper.ToDTO(user), nil
}

// DeleteByID removes the aggregate. The id is re-resolved through the store
// so the delete always runs against the canonical key.
func (s *UserService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrIDRequired
	}

	found, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		return fmt.Errorf("finding user %s: %w", id, err)
	}

	if err := s.Repo.DeleteByID(ctx, found.ID); err != nil {
		return fmt.Errorf("deleting user %s: %w", found.ID, err)
	}

	s.invalidateAggregate(ctx, found.ID)
	if s.Logger != nil {
		s.Logger.WithField("user_id", found.ID).Info("user deleted")
	}
	publishEvent(ctx, s.Events, s.Logger, UserEvent{
		Type: EventUserDeleted, UserID: found.ID.String(), Login: found.Login, Email: found.Email,
	})
	s.deleteIndexed(ctx, found.ID)

	return nil
}

// conflictFor decides which natural key caused a duplicate-key failure by
// probing the store, so the caller gets a stable conflict signal instead of
// a driver message.
func (s *UserService) conflictFor(ctx context.Context, user *entity.User) error {
	if existing, err := s.Repo.FindByLogin(ctx, user.Login); err == nil && existing.ID != user.ID {
		return fmt.Errorf("%w: %s", ErrLoginInUse, user.Login)
	}
	return fmt.Errorf("%w: %s", ErrEmailInUse, user.Email)
}

func (s *UserService) cacheAggregate(ctx context.Context, id uuid.UUID, dto UserDTO) {
	if s.Cache == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = aggregateCacheTTL
	}
	if err := s.Cache.Set(ctx, aggregateCacheKey(id), dto, ttl); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("aggregate cache write failed")
	}
}

func (s *UserService) invalidateAggregate(ctx context.Context, id uuid.UUID) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, aggregateCacheKey(id)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", id).Warn("aggregate cache invalidation failed")
	}
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Name)
	}
	doc := map[string]any{
		"id":          u.ID.String(),
		"name":        u.Name,
		"login":       u.Login,
		"email":       u.Email,
		"roles":       roles,
		"last_update": u.LastUpdate.Format(time.RFC3339Nano),
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
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"status": res.Status(), "user_id": u.ID}).Warn("es index response error")
	}
}

func (s *UserService) deleteIndexed(ctx context.Context, id uuid.UUID) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: id.String()}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchUsers queries the name/login/email fields of the search index.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
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
				"fields": []string{"login^2", "email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
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
