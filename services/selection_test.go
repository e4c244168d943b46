package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/services"
)

func option(id, groupID uint, available bool) models.Option {
	return models.Option{ID: id, GroupID: groupID, Available: available}
}

func TestToggleRemoveAlwaysAllowed(t *testing.T) {
	group := models.OptionGroup{ID: 1, MaxSelections: 1}
	s := services.NewSelection()

	opt := option(10, 1, true)
	assert.NoError(t, s.Toggle(group, opt))
	assert.True(t, s.Has(10))

	// Removing works even if the option went unavailable meanwhile.
	opt.Available = false
	assert.NoError(t, s.Toggle(group, opt))
	assert.False(t, s.Has(10))
}

func TestToggleSingleChoiceReplaces(t *testing.T) {
	group := models.OptionGroup{ID: 1, MaxSelections: 1}
	s := services.NewSelection()

	assert.NoError(t, s.Toggle(group, option(10, 1, true)))
	assert.NoError(t, s.Toggle(group, option(11, 1, true)))

	assert.False(t, s.Has(10))
	assert.True(t, s.Has(11))
}

func TestToggleCappedGroupRejectsWhenFull(t *testing.T) {
	group := models.OptionGroup{ID: 1, MaxSelections: 2}
	s := services.NewSelection()

	assert.NoError(t, s.Toggle(group, option(10, 1, true)))
	assert.NoError(t, s.Toggle(group, option(11, 1, true)))

	err := s.Toggle(group, option(12, 1, true))
	assert.ErrorIs(t, err, services.ErrMaxReached)
	// Selection unchanged by the rejected toggle.
	assert.True(t, s.Has(10))
	assert.True(t, s.Has(11))
	assert.False(t, s.Has(12))
}

func TestToggleUnlimitedGroup(t *testing.T) {
	group := models.OptionGroup{ID: 1, MaxSelections: 0}
	s := services.NewSelection()

	for id := uint(1); id <= 5; id++ {
		assert.NoError(t, s.Toggle(group, option(id, 1, true)))
	}
	assert.Len(t, s, 5)
}

func TestToggleUnavailableOption(t *testing.T) {
	group := models.OptionGroup{ID: 1}
	s := services.NewSelection()

	err := s.Toggle(group, option(10, 1, false))
	assert.ErrorIs(t, err, services.ErrOptionUnavailable)
}

func TestToggleStockedOutOption(t *testing.T) {
	group := models.OptionGroup{ID: 1}
	s := services.NewSelection()

	opt := models.Option{ID: 10, GroupID: 1, Available: true, TrackStock: true, Stock: 0}
	err := s.Toggle(group, opt)
	assert.ErrorIs(t, err, services.ErrOptionUnavailable)

	opt.Stock = 1
	assert.NoError(t, s.Toggle(group, opt))
}

func TestToggleWrongGroup(t *testing.T) {
	group := models.OptionGroup{ID: 1}
	s := services.NewSelection()

	err := s.Toggle(group, option(10, 2, true))
	assert.ErrorIs(t, err, services.ErrOptionNotInGroup)
}

func TestCanConfirm(t *testing.T) {
	groups := []models.OptionGroup{
		{ID: 1, MinSelections: 1, MaxSelections: 1},
		{ID: 2, MinSelections: 0, MaxSelections: 3},
	}
	selections := map[uint]services.Selection{
		1: services.NewSelection(),
		2: services.NewSelection(),
	}

	// Required group empty: cannot confirm.
	assert.False(t, services.CanConfirm(groups, selections))

	assert.NoError(t, selections[1].Toggle(groups[0], option(10, 1, true)))
	assert.True(t, services.CanConfirm(groups, selections))
}

func TestValidateChoices(t *testing.T) {
	group := models.OptionGroup{ID: 1, Name: "Meats", MinSelections: 1, MaxSelections: 2}

	err := services.ValidateChoices(group, nil)
	assert.ErrorIs(t, err, services.ErrBelowMinimum)

	err = services.ValidateChoices(group, []models.Option{
		option(1, 1, true), option(2, 1, true), option(3, 1, true),
	})
	assert.ErrorIs(t, err, services.ErrMaxReached)

	err = services.ValidateChoices(group, []models.Option{option(1, 2, true)})
	assert.ErrorIs(t, err, services.ErrOptionNotInGroup)

	err = services.ValidateChoices(group, []models.Option{option(1, 1, false)})
	assert.ErrorIs(t, err, services.ErrOptionUnavailable)

	err = services.ValidateChoices(group, []models.Option{option(1, 1, true), option(1, 1, true)})
	assert.Error(t, err)

	assert.NoError(t, services.ValidateChoices(group, []models.Option{option(1, 1, true)}))
}
