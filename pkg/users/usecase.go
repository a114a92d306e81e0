package users

import "context"

// UseCase describes registration, listing and removal of users.
type UseCase interface {
	Register(ctx context.Context, in NewUser) (User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService returns default implementation of UseCase.
func NewService(repo Repository) UseCase {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, in NewUser) (User, error) {
	user, err := validate(in)
	if err != nil {
		return User{}, err
	}

	// Best-effort check; the unique constraint catches concurrent inserts.
	exists, err := s.repo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return User{}, err
	}
	if exists {
		return User{}, ErrDuplicateEmail
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *service) List(ctx context.Context) ([]User, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []User{}
	}
	return list, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
