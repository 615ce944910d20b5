package app

import (
	"context"
	"fmt"
	"strings"

	"birthday_reminder_bot/internal/domain/birthday"
	idb "birthday_reminder_bot/internal/infra/database"
)

// Custom application-level errors for the CRUD command surface
var ErrBirthdayAlreadyExists = fmt.Errorf("birthday record already exists")
var ErrEmptyFriendName = fmt.Errorf("friend name must not be empty")

// BirthdayService implements the validated CRUD operations behind the
// conversational commands. All temporal logic lives in ReminderService; this
// service only guards the uniqueness invariants of the two stores.
type BirthdayService struct {
	groupRepo    birthday.GroupRepository
	personalRepo birthday.PersonalRepository
}

func NewBirthdayService(gr birthday.GroupRepository, pr birthday.PersonalRepository) *BirthdayService {
	return &BirthdayService{
		groupRepo:    gr,
		personalRepo: pr,
	}
}

// AddPersonal records a friend's birthday in the caller's private list.
// At most one record may exist per (owner, name, date) combination.
func (s *BirthdayService) AddPersonal(ctx context.Context, userID int64, name, date string) (*birthday.PersonalBirthday, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyFriendName
	}
	if err := birthday.ValidateDate(date); err != nil {
		return nil, err
	}

	_, err := s.personalRepo.GetByOwnerNameAndDate(ctx, userID, name, date)
	if err == nil { // Record found, so already exists
		return nil, ErrBirthdayAlreadyExists
	}
	if err != idb.ErrPersonalBirthdayNotFound { // Another error occurred during lookup
		return nil, fmt.Errorf("failed to check existing personal birthday: %w", err)
	}

	newBirthday := &birthday.PersonalBirthday{
		UserID: userID,
		Name:   name,
		Date:   date,
	}
	if err := s.personalRepo.Create(ctx, newBirthday); err != nil {
		if err == idb.ErrDuplicatePersonalBirthday { // Safety net behind the lookup check
			return nil, ErrBirthdayAlreadyExists
		}
		return nil, fmt.Errorf("failed to create personal birthday: %w", err)
	}
	return newBirthday, nil
}

// AddGroup records the caller's own birthday in a group. At most one record
// may exist per (owner, group) pair; changing it requires delete-then-add.
func (s *BirthdayService) AddGroup(ctx context.Context, userID, chatID int64, date string) (*birthday.GroupBirthday, error) {
	if err := birthday.ValidateDate(date); err != nil {
		return nil, err
	}

	_, err := s.groupRepo.GetByUserAndChat(ctx, userID, chatID)
	if err == nil {
		return nil, ErrBirthdayAlreadyExists
	}
	if err != idb.ErrGroupBirthdayNotFound {
		return nil, fmt.Errorf("failed to check existing group birthday: %w", err)
	}

	newBirthday := &birthday.GroupBirthday{
		UserID: userID,
		ChatID: chatID,
		Date:   date,
	}
	if err := s.groupRepo.Create(ctx, newBirthday); err != nil {
		if err == idb.ErrDuplicateGroupBirthday {
			return nil, ErrBirthdayAlreadyExists
		}
		return nil, fmt.Errorf("failed to create group birthday: %w", err)
	}
	return newBirthday, nil
}

// DeletePersonal removes the named friend's record from the caller's list.
// Propagates idb.ErrPersonalBirthdayNotFound when there is nothing to delete.
func (s *BirthdayService) DeletePersonal(ctx context.Context, userID int64, name string) (*birthday.PersonalBirthday, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyFriendName
	}
	deleted, err := s.personalRepo.DeleteByOwnerAndName(ctx, userID, name)
	if err != nil {
		if err == idb.ErrPersonalBirthdayNotFound {
			return nil, idb.ErrPersonalBirthdayNotFound
		}
		return nil, fmt.Errorf("failed to delete personal birthday: %w", err)
	}
	return deleted, nil
}

// DeleteGroup removes the caller's record for the given group.
func (s *BirthdayService) DeleteGroup(ctx context.Context, userID, chatID int64) (*birthday.GroupBirthday, error) {
	deleted, err := s.groupRepo.DeleteByUserAndChat(ctx, userID, chatID)
	if err != nil {
		if err == idb.ErrGroupBirthdayNotFound {
			return nil, idb.ErrGroupBirthdayNotFound
		}
		return nil, fmt.Errorf("failed to delete group birthday: %w", err)
	}
	return deleted, nil
}

// ListGroup returns all birthday records registered in a group.
func (s *BirthdayService) ListGroup(ctx context.Context, chatID int64) ([]*birthday.GroupBirthday, error) {
	records, err := s.groupRepo.ListByChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to list group birthdays: %w", err)
	}
	return records, nil
}

// ListPersonal returns the caller's full friend list.
func (s *BirthdayService) ListPersonal(ctx context.Context, userID int64) ([]*birthday.PersonalBirthday, error) {
	records, err := s.personalRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal birthdays: %w", err)
	}
	return records, nil
}
