package service_test

import (
	"testing"

	"github.com/mdouchement/pantry/internal/apperror"
	"github.com/mdouchement/pantry/internal/model"
	"github.com/mdouchement/pantry/internal/server/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemService(t *testing.T) {
	db := setup(t)
	items := service.NewItem(db)

	joe := &model.User{Email: "joe@example.com", Password: "digest"}
	require.NoError(t, db.Save(joe))
	jane := &model.User{Email: "jane@example.com", Password: "digest"}
	require.NoError(t, db.Save(jane))

	milk, err := items.Create(joe, service.ItemParams{Name: "Milk", Notes: "2 bottles"})
	require.NoError(t, err)
	assert.Equal(t, joe.ID, milk.UserID)

	apple, err := items.Create(joe, service.ItemParams{Name: "Apple", Notes: "1 kg"})
	require.NoError(t, err)

	oil, err := items.Create(jane, service.ItemParams{Name: "Olive oil", Notes: "1 bottle. 2 bottles if on discount."})
	require.NoError(t, err)

	//
	// List

	list, err := items.List(joe)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, milk.ID, list[0].ID)
	assert.Equal(t, apple.ID, list[1].ID)

	list, err = items.List(jane)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, oil.ID, list[0].ID)

	//
	// Get

	item, err := items.Get(joe, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", item.Name)

	_, err = items.Get(jane, milk.ID)
	assert.True(t, apperror.Is(err, apperror.Authorization))

	_, err = items.Get(joe, "d989ccc9-15c6-475e-839b-1690bd07d073")
	assert.True(t, apperror.Is(err, apperror.NotFound))

	//
	// Update

	err = items.Update(jane, milk.ID, service.ItemParams{Name: "Stolen", Notes: "milk"})
	assert.True(t, apperror.Is(err, apperror.Authorization))

	err = items.Update(joe, milk.ID, service.ItemParams{Name: "Milk", Notes: "3 bottles"})
	require.NoError(t, err)

	item, err = items.Get(joe, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, "3 bottles", item.Notes)
	assert.Equal(t, joe.ID, item.UserID)

	err = items.Update(joe, "d989ccc9-15c6-475e-839b-1690bd07d073", service.ItemParams{Name: "Milk", Notes: "3 bottles"})
	assert.True(t, apperror.Is(err, apperror.NotFound))

	//
	// Delete

	err = items.Delete(jane, milk.ID)
	assert.True(t, apperror.Is(err, apperror.Authorization))

	require.NoError(t, items.Delete(joe, milk.ID))

	err = items.Delete(joe, milk.ID)
	assert.True(t, apperror.Is(err, apperror.NotFound), "deleting twice is not found")

	_, err = items.Get(joe, milk.ID)
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestItemService_Validation(t *testing.T) {
	db := setup(t)
	items := service.NewItem(db)

	joe := &model.User{Email: "joe@example.com", Password: "digest"}
	require.NoError(t, db.Save(joe))

	for name, params := range map[string]service.ItemParams{
		"empty":    {},
		"no name":  {Notes: "2 bottles"},
		"no notes": {Name: "Milk"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := items.Create(joe, params)
			assert.True(t, apperror.Is(err, apperror.Validation))
		})
	}

	list, err := items.List(joe)
	require.NoError(t, err)
	assert.Empty(t, list, "no item must be created")

	milk, err := items.Create(joe, service.ItemParams{Name: "Milk", Notes: "2 bottles"})
	require.NoError(t, err)

	err = items.Update(joe, milk.ID, service.ItemParams{Name: "Milk"})
	assert.True(t, apperror.Is(err, apperror.Validation))

	err = items.Update(joe, "d989ccc9-15c6-475e-839b-1690bd07d073", service.ItemParams{})
	assert.True(t, apperror.Is(err, apperror.Validation), "validation comes before existence")
}
