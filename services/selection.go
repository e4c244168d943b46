package services

import (
	"errors"
	"fmt"

	"github.com/sabordacasa/delivery-app/models"
)

// Errors returned by the option selection model.
var (
	ErrMaxReached        = errors.New("selection limit reached for this group")
	ErrOptionUnavailable = errors.New("option is not available")
	ErrOptionNotInGroup  = errors.New("option does not belong to group")
	ErrBelowMinimum      = errors.New("minimum selections not met")
)

// Selection is the set of chosen option ids for a single option group while a
// customer configures an item.
type Selection map[uint]struct{}

func NewSelection() Selection {
	return make(Selection)
}

func (s Selection) Has(id uint) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips an option in or out of the selection under the group's rules:
// removing is always allowed; a single-choice group replaces the previous
// pick; a capped group rejects the toggle once full, leaving the selection
// unchanged; an uncapped group always adds. Unavailable options cannot be
// toggled on.
func (s Selection) Toggle(group models.OptionGroup, opt models.Option) error {
	if opt.GroupID != group.ID {
		return ErrOptionNotInGroup
	}

	if s.Has(opt.ID) {
		delete(s, opt.ID)
		return nil
	}

	if !opt.IsAvailable() {
		return ErrOptionUnavailable
	}

	switch {
	case group.MaxSelections == 1:
		for id := range s {
			delete(s, id)
		}
		s[opt.ID] = struct{}{}
	case group.MaxSelections > 1 && len(s) >= group.MaxSelections:
		return ErrMaxReached
	default:
		s[opt.ID] = struct{}{}
	}
	return nil
}

// MeetsMinimum reports whether the selection satisfies the group's floor.
// Evaluated per toggle to drive confirm-button enablement.
func MeetsMinimum(group models.OptionGroup, s Selection) bool {
	return len(s) >= group.MinSelections
}

// CanConfirm reports whether an item may be added to the cart: every linked
// group must meet its minimum.
func CanConfirm(groups []models.OptionGroup, selections map[uint]Selection) bool {
	for _, g := range groups {
		if !MeetsMinimum(g, selections[g.ID]) {
			return false
		}
	}
	return true
}

// ValidateChoices is the confirm-time re-validation of a finished selection:
// membership, availability and the min/max constraints are all checked again
// against current data before the order is accepted.
func ValidateChoices(group models.OptionGroup, chosen []models.Option) error {
	if len(chosen) < group.MinSelections {
		return fmt.Errorf("%s: %w", group.Name, ErrBelowMinimum)
	}
	if group.MaxSelections > 0 && len(chosen) > group.MaxSelections {
		return fmt.Errorf("%s: %w", group.Name, ErrMaxReached)
	}
	seen := make(map[uint]struct{}, len(chosen))
	for _, opt := range chosen {
		if opt.GroupID != group.ID {
			return fmt.Errorf("%s: %w", opt.Name, ErrOptionNotInGroup)
		}
		if !opt.IsAvailable() {
			return fmt.Errorf("%s: %w", opt.Name, ErrOptionUnavailable)
		}
		if _, dup := seen[opt.ID]; dup {
			return fmt.Errorf("%s: duplicate option", opt.Name)
		}
		seen[opt.ID] = struct{}{}
	}
	return nil
}
