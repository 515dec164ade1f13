package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/pantry/internal/apperror"
	"github.com/mdouchement/pantry/internal/server/serializer"
	"github.com/mdouchement/pantry/internal/server/service"
)

// item contains all item handlers.
type item struct {
	items service.ItemService
}

// List renders all the items of the current user.
func (h *item) List(c echo.Context) error {
	items, err := h.items.List(currentUser(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Items(items))
}

// Create stores a new item owned by the current user.
func (h *item) Create(c echo.Context) error {
	var params service.ItemParams
	if err := c.Bind(&params); err != nil {
		return apperror.NewValidation(err)
	}

	item, err := h.items.Create(currentUser(c), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, serializer.Item(item))
}

// Show renders the requested item.
func (h *item) Show(c echo.Context) error {
	item, err := h.items.Get(currentUser(c), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Item(item))
}

// Update replaces the name and the notes of the requested item.
func (h *item) Update(c echo.Context) error {
	var params service.ItemParams
	if err := c.Bind(&params); err != nil {
		return apperror.NewValidation(err)
	}

	if err := h.items.Update(currentUser(c), c.Param("id"), params); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes the requested item.
func (h *item) Delete(c echo.Context) error {
	if err := h.items.Delete(currentUser(c), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
